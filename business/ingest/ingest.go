package ingest

import "context"

const keyTimeFormat = "20060102_1504"

// LakeGateway is the write-only slice of the object store the ingestors use.
type LakeGateway interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
