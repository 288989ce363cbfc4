package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"property-client/internal/contextkeys"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"
)

// Тексты сообщений для пользователя
const (
	MsgLoadFailed   = "Failed to load properties"
	MsgValidation   = "Required fields are missing"
	MsgCreated      = "Property created"
	MsgUpdated      = "Property updated"
	MsgSaveFailed   = "Failed to save property"
	MsgFetchFailed  = "Could not fetch property"
	MsgDeleted      = "Property deleted"
	MsgDeleteFailed = "Failed to delete property"
)

// PropertyClient - контроллер клиента: хранит состояние страницы и формы,
// превращает действия пользователя в запросы к API и отдает результат представлению.
type PropertyClient struct {
	api       port.PropertyAPIPort
	view      port.ViewPort
	confirmer port.ConfirmerPort
	events    port.PropertyEventsPort // может быть nil
	notifier  *Notifier
	now       func() time.Time

	mu    sync.Mutex
	state ClientState
	// порядковый номер последнего запроса списка; ответы на более ранние запросы отбрасываются
	listSeq uint64
}

// NewPropertyClient - конструктор. events может быть nil, тогда события не публикуются.
func NewPropertyClient(api port.PropertyAPIPort, view port.ViewPort, confirmer port.ConfirmerPort,
	events port.PropertyEventsPort, messageTTL time.Duration) *PropertyClient {
	return &PropertyClient{
		api:       api,
		view:      view,
		confirmer: confirmer,
		events:    events,
		notifier:  NewNotifier(view, messageTTL),
		now:       time.Now,
	}
}

// Init рисует пустую форму и загружает первую страницу
func (c *PropertyClient) Init(ctx context.Context) error {
	c.mu.Lock()
	c.view.RenderForm(c.state.mode, c.state.form)
	c.view.RenderFilters(c.state.filters)
	c.mu.Unlock()

	return c.LoadProperties(ctx, 0)
}

// LoadProperties загружает страницу page с текущими фильтрами.
// При ошибке на экране остается последняя успешно загруженная страница.
func (c *PropertyClient) LoadProperties(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoadProperties",
		"page":     page,
	})

	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	query := domain.ListQuery{Page: page, Size: domain.PageSize, Filters: c.state.filters}
	c.mu.Unlock()

	logger.Debug("Requesting properties page", port.Fields{"seq": seq})
	result, err := c.api.List(ctx, query)

	c.mu.Lock()
	if seq != c.listSeq {
		c.mu.Unlock()
		logger.Debug("Discarding superseded list response", port.Fields{"seq": seq})
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		logger.Error("Failed to load properties", err, nil)
		c.notifier.Show(domain.ErrorMessage(MsgLoadFailed))
		return fmt.Errorf("load properties page %d: %w", page, err)
	}
	c.state.applyPage(result)
	c.view.RenderList(c.state.ListView())
	c.mu.Unlock()

	logger.Info("Properties page loaded", port.Fields{
		"current_page":  result.Number,
		"total_pages":   result.TotalPages,
		"items_on_page": len(result.Content),
	})
	return nil
}

// Refresh перезагружает текущую страницу
func (c *PropertyClient) Refresh(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.currentPage
	c.mu.Unlock()

	return c.LoadProperties(ctx, page)
}

// Submit создает запись (режим Create) или обновляет редактируемую (режим Edit).
// При ошибке форма остается как есть, чтобы пользователь мог повторить.
func (c *PropertyClient) Submit(ctx context.Context, values domain.FormValues) error {
	c.mu.Lock()
	c.state.form = values
	mode := c.state.mode
	c.view.RenderForm(mode, values)
	c.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "Submit",
		"form_mode": mode.String(),
	})

	input, err := values.Validate()
	if err != nil {
		logger.Warn("Form validation failed", nil)
		c.notifier.Show(domain.ErrorMessage(MsgValidation))
		return err
	}

	var saved *domain.Property
	changeType := domain.PropertyCreated
	if id, ok := mode.EditID(); ok {
		changeType = domain.PropertyUpdated
		saved, err = c.api.Update(ctx, id, input)
	} else {
		saved, err = c.api.Create(ctx, input)
	}
	if err != nil {
		logger.Error("Failed to save property", err, nil)
		c.notifier.Show(domain.ErrorMessage(saveErrorMessage(err)))
		return err
	}

	if changeType == domain.PropertyUpdated {
		c.notifier.Show(domain.SuccessMessage(MsgUpdated))
	} else {
		c.notifier.Show(domain.SuccessMessage(MsgCreated))
	}

	c.mu.Lock()
	c.state.resetForm()
	c.view.RenderForm(c.state.mode, c.state.form)
	page := c.state.currentPage
	c.mu.Unlock()

	savedID, _ := mode.EditID()
	if saved != nil && saved.IsPersisted() {
		savedID = saved.ID
	}
	logger.Info("Property saved", port.Fields{"property_id": savedID})
	c.publish(ctx, domain.NewPropertyChangedEvent(changeType, savedID, saved, c.now()))

	return c.LoadProperties(ctx, page)
}

// StartEdit загружает запись и переводит форму в режим редактирования
func (c *PropertyClient) StartEdit(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "StartEdit",
		"property_id": id,
	})

	property, err := c.api.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch property", err, nil)
		c.notifier.Show(domain.ErrorMessage(MsgFetchFailed))
		return err
	}
	if !property.IsPersisted() {
		property.ID = id
	}

	c.mu.Lock()
	c.state.startEdit(*property)
	c.view.RenderForm(c.state.mode, c.state.form)
	c.view.ScrollToTop()
	c.mu.Unlock()

	logger.Debug("Form switched to edit mode", nil)
	return nil
}

// CancelEdit возвращает форму в режим создания; запросов не делает
func (c *PropertyClient) CancelEdit(ctx context.Context) {
	c.mu.Lock()
	c.state.resetForm()
	c.view.RenderForm(c.state.mode, c.state.form)
	c.mu.Unlock()

	contextkeys.LoggerFromContext(ctx).Debug("Edit cancelled", port.Fields{"use_case": "CancelEdit"})
}

// DeleteProperty удаляет запись после подтверждения пользователя.
// Отказ от подтверждения - не ошибка, просто ничего не происходит.
func (c *PropertyClient) DeleteProperty(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	confirmed, err := c.confirmer.Confirm(ctx, fmt.Sprintf("Delete property #%d?", id))
	if err != nil {
		logger.Error("Confirmation prompt failed", err, nil)
		return err
	}
	if !confirmed {
		logger.Debug("Delete declined by user", nil)
		return nil
	}

	if err := c.api.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete property", err, nil)
		c.notifier.Show(domain.ErrorMessage(MsgDeleteFailed))
		return err
	}

	c.notifier.Show(domain.SuccessMessage(MsgDeleted))
	logger.Info("Property deleted", nil)
	c.publish(ctx, domain.NewPropertyChangedEvent(domain.PropertyDeleted, id, nil, c.now()))

	// страница могла стать пустой или лишней - верим ответу сервера
	return c.Refresh(ctx)
}

// ApplyFilters запоминает фильтры и загружает первую страницу
func (c *PropertyClient) ApplyFilters(ctx context.Context, filters domain.FilterState) error {
	c.mu.Lock()
	c.state.filters = filters
	c.view.RenderFilters(filters)
	c.mu.Unlock()

	return c.LoadProperties(ctx, 0)
}

// ClearFilters очищает все фильтры и загружает первую страницу
func (c *PropertyClient) ClearFilters(ctx context.Context) error {
	return c.ApplyFilters(ctx, domain.FilterState{})
}

func (c *PropertyClient) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanPrev() {
		c.mu.Unlock()
		return nil
	}
	page := c.state.currentPage - 1
	c.mu.Unlock()

	return c.LoadProperties(ctx, page)
}

func (c *PropertyClient) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.CanNext() {
		c.mu.Unlock()
		return nil
	}
	page := c.state.currentPage + 1
	c.mu.Unlock()

	return c.LoadProperties(ctx, page)
}

// Snapshot возвращает копию текущего состояния
func (c *PropertyClient) Snapshot() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Message возвращает сообщение, которое сейчас показано пользователю
func (c *PropertyClient) Message() domain.Message {
	return c.notifier.Current()
}

// Close останавливает таймер сообщений
func (c *PropertyClient) Close() {
	c.notifier.Close()
}

func (c *PropertyClient) publish(ctx context.Context, event domain.PropertyChangedEvent) {
	if c.events == nil {
		return
	}
	if err := c.events.PublishPropertyChanged(ctx, event); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to publish property change event", port.Fields{
			"event_type":  string(event.Type),
			"property_id": event.PropertyID,
			"error":       err.Error(),
		})
	}
}

func saveErrorMessage(err error) string {
	if status, ok := domain.StatusCodeOf(err); ok {
		return fmt.Sprintf("HTTP error %d", status)
	}
	return MsgSaveFailed
}
