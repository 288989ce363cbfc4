package usecases_port

import (
	"context"
	"property-client/internal/core/domain"
)

// PropertyClientUseCase - операции контроллера, которые вызывают представления (web, terminal).
type PropertyClientUseCase interface {
	Init(ctx context.Context) error
	LoadProperties(ctx context.Context, page int) error
	Submit(ctx context.Context, values domain.FormValues) error
	StartEdit(ctx context.Context, id int64) error
	CancelEdit(ctx context.Context)
	DeleteProperty(ctx context.Context, id int64) error
	ApplyFilters(ctx context.Context, filters domain.FilterState) error
	ClearFilters(ctx context.Context) error
	PrevPage(ctx context.Context) error
	NextPage(ctx context.Context) error
	Refresh(ctx context.Context) error
}
