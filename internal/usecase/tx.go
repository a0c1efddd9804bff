package usecase

import "context"

// TxManager runs fn atomically: either every repository write inside fn
// lands, or none do. The postgres implementation opens one database
// transaction; the memory implementation just runs fn.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
