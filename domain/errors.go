package domain

import "errors"

var (
	// ErrNoData means a required lake prefix holds no objects at all.
	ErrNoData = errors.New("no data under prefix")

	// ErrMissingTransactionData aborts a gold binder run: transactions are
	// the one mandatory silver input.
	ErrMissingTransactionData = errors.New("no cleaned transaction data")

	// ErrObjectNotFound is returned by the lake gateway for a missing key.
	ErrObjectNotFound = errors.New("object not found")
)
