package ports

import "context"

// TxRunner runs fn inside a single store transaction. Repositories called with
// the context passed to fn take part in that transaction. The transaction is
// rolled back when fn returns an error.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
