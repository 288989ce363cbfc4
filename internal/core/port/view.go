package port

import (
	"context"
	"property-client/internal/core/domain"
)

// ViewPort - то, что контроллер умеет показывать пользователю.
// Методы вызываются под блокировкой контроллера, поэтому реализация
// не должна обращаться к контроллеру обратно.
type ViewPort interface {
	RenderList(view domain.ListView)
	// RenderMessage с нулевым Message означает "убрать сообщение"
	RenderMessage(msg domain.Message)
	RenderForm(mode domain.FormMode, values domain.FormValues)
	RenderFilters(filters domain.FilterState)
	ScrollToTop()
}

// ConfirmerPort запрашивает у пользователя подтверждение действия
type ConfirmerPort interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
