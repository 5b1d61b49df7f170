package repository

import "context"

// Transactor runs a function as one atomic unit of work. Repositories called
// with the context handed to fn take part in the same transaction; if fn
// returns an error every write made through that context is rolled back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
