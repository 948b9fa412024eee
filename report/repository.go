package report

import "context"

const (
	DefaultLimit  = 100
	DefaultOffset = 0
)

type Repository interface {
	List(ctx context.Context, offset int, limit int) (*Collection, error)

	GetByID(ctx context.Context, id string) (*Report, error)
	Add(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id string) error

	IsReady() bool
	Close() error
}
