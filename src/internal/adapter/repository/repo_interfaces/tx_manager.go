package repo_interfaces

import "context"

// TxManager runs fn as one unit of work. Repositories called with the ctx
// passed to fn take part in it. A nested WithinTx joins the outer unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
