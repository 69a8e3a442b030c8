package pool

import (
	"errors"

	"keypool-go/internal/credential"
)

var (
	// ErrNoCredentials is returned at construction time when zero usable
	// credentials remain after filtering. The pool is not usable.
	ErrNoCredentials = credential.ErrNoCredentials

	// ErrPoolExhausted is returned by Select against an empty pool. Callers
	// should abort or queue the request; retrying the pool cannot help.
	ErrPoolExhausted = errors.New("credential pool exhausted")
)
