package domain

import "time"

// ObjectInfo identifies one stored snapshot and its modification time,
// which is what the freshest-wins selection sorts on.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}
