package web

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"time"

	"property-client/internal/adapters/metrics"
	"property-client/internal/contextkeys"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"
	"property-client/internal/core/port/usecases_port"
)

// PropertyHandlers переводят HTTP-запросы в операции контроллера
type PropertyHandlers struct {
	client     usecases_port.PropertyClientUseCase
	view       *WebView
	metrics    *metrics.Collector
	templates  *template.Template
	messageTTL time.Duration
}

func NewPropertyHandlers(client usecases_port.PropertyClientUseCase, view *WebView,
	collector *metrics.Collector, messageTTL time.Duration) (*PropertyHandlers, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse web templates: %w", err)
	}
	return &PropertyHandlers{
		client:     client,
		view:       view,
		metrics:    collector,
		templates:  templates,
		messageTTL: messageTTL,
	}, nil
}

// HandleIndex - GET /
func (h *PropertyHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	model := h.view.Snapshot()

	data := pageData{Model: model}
	if !model.Message.IsZero() && h.messageTTL > 0 {
		// страница перезагрузится, когда сообщение уже исчезнет
		data.RefreshSeconds = int(math.Ceil(h.messageTTL.Seconds()))
	}
	h.render(w, r, "page.html", data)
}

// HandleSubmit - POST /properties
func (h *PropertyHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	values := domain.FormValues{
		Address:     r.PostFormValue("address"),
		Price:       r.PostFormValue("price"),
		Size:        r.PostFormValue("size"),
		Description: r.PostFormValue("description"),
	}

	err := h.client.Submit(r.Context(), values)
	h.finish(r, "submit", err)
	redirectHome(w, r, "")
}

// HandleStartEdit - POST /properties/{id}/edit
func (h *PropertyHandlers) HandleStartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	err := h.client.StartEdit(r.Context(), id)
	h.finish(r, "start_edit", err)

	if h.view.TakeScroll() {
		redirectHome(w, r, "property-form")
		return
	}
	redirectHome(w, r, "")
}

// HandleConfirmDelete - GET /properties/{id}/delete, страница подтверждения
func (h *PropertyHandlers) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}
	h.render(w, r, "confirm.html", confirmData{ID: id, Prompt: fmt.Sprintf("Delete property #%d?", id)})
}

// HandleDelete - POST /properties/{id}/delete; confirm=yes подтверждает удаление
func (h *PropertyHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	ctx := ContextWithConfirmation(r.Context(), r.PostFormValue("confirm") == "yes")
	err := h.client.DeleteProperty(ctx, id)
	h.finish(r, "delete", err)
	redirectHome(w, r, "")
}

// HandleCancelEdit - POST /form/cancel
func (h *PropertyHandlers) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	h.client.CancelEdit(r.Context())
	h.finish(r, "cancel_edit", nil)
	redirectHome(w, r, "")
}

// HandleApplyFilters - POST /filters
func (h *PropertyHandlers) HandleApplyFilters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	filters := domain.FilterState{
		Address:  r.PostFormValue("address"),
		MinPrice: domain.ParseBound(r.PostFormValue("minPrice")),
		MaxPrice: domain.ParseBound(r.PostFormValue("maxPrice")),
		MinSize:  domain.ParseBound(r.PostFormValue("minSize")),
		MaxSize:  domain.ParseBound(r.PostFormValue("maxSize")),
	}

	err := h.client.ApplyFilters(r.Context(), filters)
	h.finish(r, "apply_filters", err)
	redirectHome(w, r, "")
}

// HandleClearFilters - POST /filters/clear
func (h *PropertyHandlers) HandleClearFilters(w http.ResponseWriter, r *http.Request) {
	err := h.client.ClearFilters(r.Context())
	h.finish(r, "clear_filters", err)
	redirectHome(w, r, "")
}

func (h *PropertyHandlers) HandlePrevPage(w http.ResponseWriter, r *http.Request) {
	err := h.client.PrevPage(r.Context())
	h.finish(r, "prev_page", err)
	redirectHome(w, r, "")
}

func (h *PropertyHandlers) HandleNextPage(w http.ResponseWriter, r *http.Request) {
	err := h.client.NextPage(r.Context())
	h.finish(r, "next_page", err)
	redirectHome(w, r, "")
}

// HandleRefresh - POST /refresh, перезагрузка текущей страницы
func (h *PropertyHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	err := h.client.Refresh(r.Context())
	h.finish(r, "refresh", err)
	redirectHome(w, r, "")
}

// HandleState - GET /state, состояние страницы в JSON
func (h *PropertyHandlers) HandleState(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, newStateResponse(h.view.Snapshot()))
}

func (h *PropertyHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// finish логирует результат действия и считает его в метриках.
// Сообщение пользователю уже показал контроллер.
func (h *PropertyHandlers) finish(r *http.Request, action string, err error) {
	h.metrics.RecordUIAction("web", action, err)

	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"action": action})
	if err != nil {
		logger.Warn("Action finished with error", port.Fields{"error": err.Error()})
		return
	}
	logger.Debug("Action finished", nil)
}

func (h *PropertyHandlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to render template", err, port.Fields{"template": name})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
