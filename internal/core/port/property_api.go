package port

import (
	"context"
	"property-client/internal/core/domain"
)

// PropertyAPIPort - контракт REST-бэкенда с объектами недвижимости.
// Любой ответ вне 2xx возвращается как *domain.APIError.
type PropertyAPIPort interface {
	List(ctx context.Context, query domain.ListQuery) (*domain.PageResult, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
	Create(ctx context.Context, input domain.PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id int64, input domain.PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}
