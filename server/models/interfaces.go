package models

import "context"

// PersonRepository is implemented by PersonStore; handlers depend on it so tests can swap the store.
type PersonRepository interface {
	FindAll(ctx context.Context) ([]Person, error)
	FindByType(ctx context.Context, personType string) ([]Person, error)
	FindByID(ctx context.Context, id uint) (*Person, error)
	Create(ctx context.Context, person *Person) error
	UpdateByID(ctx context.Context, id uint, data PersonUpdate) (*Person, error)
	UpdateByType(ctx context.Context, personType string, data PersonUpdate) (int64, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByType(ctx context.Context, personType string) (int64, error)
}

var _ PersonRepository = (*PersonStore)(nil)
