package domain

import "context"

// Transactor runs fn inside a single database transaction. The transaction
// is carried in the context handed to fn; repository calls made with that
// context join it. Any error from fn rolls the whole transaction back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
