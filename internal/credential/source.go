package credential

import (
	"context"
)

// Source loads credentials from one origin (environment variables, a file on
// disk, ...). Sources are consulted once at startup; the resulting Store is
// fixed for the process lifetime.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Credential, error)
}
