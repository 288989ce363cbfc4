package port

import (
	"context"
	"property-client/internal/core/domain"
)

type PropertyEventsPort interface {
	PublishPropertyChanged(ctx context.Context, event domain.PropertyChangedEvent) error
}
