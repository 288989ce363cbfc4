package web

import (
	"context"
	"sync"

	"property-client/internal/core/domain"
	"property-client/internal/core/port"
)

// PageModel - все, что нужно, чтобы нарисовать страницу
type PageModel struct {
	List    domain.ListView
	Message domain.Message
	Mode    domain.FormMode
	Form    domain.FormValues
	Filters domain.FilterState
	// Prompt - последний заданный вопрос подтверждения
	Prompt string
}

var (
	_ port.ViewPort      = (*WebView)(nil)
	_ port.ConfirmerPort = (*WebView)(nil)
)

// WebView запоминает последнее отрисованное контроллером состояние;
// HTML строится из него при каждом GET.
type WebView struct {
	mu            sync.Mutex
	model         PageModel
	scrollPending bool
}

func NewWebView() *WebView {
	return &WebView{model: PageModel{List: domain.NewListView(nil, 0, 0)}}
}

func (v *WebView) RenderList(view domain.ListView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model.List = view
}

func (v *WebView) RenderMessage(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model.Message = msg
}

func (v *WebView) RenderForm(mode domain.FormMode, values domain.FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model.Mode = mode
	v.model.Form = values
}

func (v *WebView) RenderFilters(filters domain.FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.model.Filters = filters
}

// ScrollToTop выполняется редиректом на якорь формы
func (v *WebView) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollPending = true
}

// TakeScroll возвращает и сбрасывает запрос на прокрутку
func (v *WebView) TakeScroll() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	pending := v.scrollPending
	v.scrollPending = false
	return pending
}

// Confirm берет ответ пользователя из контекста запроса (см. ContextWithConfirmation).
// Без ответа действие не подтверждено.
func (v *WebView) Confirm(ctx context.Context, prompt string) (bool, error) {
	v.mu.Lock()
	v.model.Prompt = prompt
	v.mu.Unlock()

	confirmed, _ := ctx.Value(confirmationKey{}).(bool)
	return confirmed, nil
}

// Snapshot возвращает копию модели страницы
func (v *WebView) Snapshot() PageModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	model := v.model
	model.List.Rows = append([]domain.Property(nil), v.model.List.Rows...)
	return model
}

type confirmationKey struct{}

// ContextWithConfirmation кладет в контекст ответ на вопрос подтверждения
func ContextWithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, confirmed)
}
