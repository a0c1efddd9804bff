package memory

import "context"

// TxManager satisfies the use case transaction contract without real
// transactions. Repository methods are individually atomic, so the
// callback just runs in place.
type TxManager struct{}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (*TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
