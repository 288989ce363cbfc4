package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"property-client/internal/adapters/metrics"
	"property-client/internal/adapters/viewfmt"
	"property-client/internal/contextkeys"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"
	"property-client/internal/core/port/usecases_port"
)

const uiName = "terminal"

// Пункты меню
const (
	actionRefresh      = "Refresh"
	actionNextPage     = "Next page"
	actionPrevPage     = "Previous page"
	actionCreate       = "New property"
	actionSave         = "Save changes"
	actionEdit         = "Edit property"
	actionCancelEdit   = "Cancel edit"
	actionDelete       = "Delete property"
	actionApplyFilters = "Apply filters"
	actionClearFilters = "Clear filters"
	actionQuit         = "Quit"
)

// Runner - цикл меню терминального интерфейса.
// Каждое действие получает свой trace_id, как отдельный HTTP-запрос в web-режиме.
type Runner struct {
	client  usecases_port.PropertyClientUseCase
	view    *View
	driver  PromptDriver
	logger  port.LoggerPort
	metrics *metrics.Collector
}

func NewRunner(client usecases_port.PropertyClientUseCase, view *View, driver PromptDriver,
	logger port.LoggerPort, collector *metrics.Collector) *Runner {
	return &Runner{
		client:  client,
		view:    view,
		driver:  driver,
		logger:  logger,
		metrics: collector,
	}
}

// Run загружает первую страницу и крутит меню до Quit, Ctrl+C или отмены ctx
func (r *Runner) Run(ctx context.Context) error {
	initCtx, logger := contextkeys.WithActionScope(ctx, r.logger, "")
	if err := r.client.Init(initCtx); err != nil {
		// сообщение уже показано, меню доступно для повтора
		logger.Warn("Initial load failed", port.Fields{"error": err.Error()})
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		options := r.menu()
		index, err := r.driver.Select(ctx, SelectConfig{Message: "Choose an action", Options: options, PageSize: len(options)})
		if err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("menu prompt failed: %w", err)
		}
		if index < 0 || index >= len(options) {
			continue
		}

		action := options[index]
		if action == actionQuit {
			return nil
		}

		actionCtx, actionLogger := contextkeys.WithActionScope(ctx, r.logger, "")
		err = r.perform(actionCtx, action)
		if errors.Is(err, ErrAborted) {
			actionLogger.Debug("Action aborted by user", port.Fields{"action": action})
			return nil
		}
		r.finish(actionLogger, action, err)
	}
}

// menu строит список действий, доступных в текущем состоянии
func (r *Runner) menu() []string {
	list := r.view.List()
	mode, _ := r.view.Form()

	options := []string{actionRefresh}
	if list.CanNext {
		options = append(options, actionNextPage)
	}
	if list.CanPrev {
		options = append(options, actionPrevPage)
	}
	if mode.IsEdit() {
		options = append(options, actionSave, actionCancelEdit)
	} else {
		options = append(options, actionCreate)
	}
	if !list.Empty() {
		options = append(options, actionEdit, actionDelete)
	}
	options = append(options, actionApplyFilters)
	if !r.view.Filters().IsEmpty() {
		options = append(options, actionClearFilters)
	}
	return append(options, actionQuit)
}

func (r *Runner) perform(ctx context.Context, action string) error {
	switch action {
	case actionRefresh:
		return r.client.Refresh(ctx)
	case actionNextPage:
		return r.client.NextPage(ctx)
	case actionPrevPage:
		return r.client.PrevPage(ctx)
	case actionCreate, actionSave:
		values, err := r.askForm(ctx)
		if err != nil {
			return err
		}
		return r.client.Submit(ctx, values)
	case actionEdit:
		id, ok, err := r.pickProperty(ctx, "Edit which property?")
		if err != nil || !ok {
			return err
		}
		return r.client.StartEdit(ctx, id)
	case actionCancelEdit:
		r.client.CancelEdit(ctx)
		return nil
	case actionDelete:
		id, ok, err := r.pickProperty(ctx, "Delete which property?")
		if err != nil || !ok {
			return err
		}
		return r.client.DeleteProperty(ctx, id)
	case actionApplyFilters:
		filters, err := r.askFilters(ctx)
		if err != nil {
			return err
		}
		return r.client.ApplyFilters(ctx, filters)
	case actionClearFilters:
		return r.client.ClearFilters(ctx)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (r *Runner) finish(logger port.LoggerPort, action string, err error) {
	r.metrics.RecordUIAction(uiName, action, err)

	logger = logger.WithFields(port.Fields{"action": action})
	if err != nil {
		logger.Warn("Action finished with error", port.Fields{"error": err.Error()})
		return
	}
	logger.Debug("Action finished", nil)
}

// askForm спрашивает поля формы; по умолчанию подставляются текущие значения
func (r *Runner) askForm(ctx context.Context) (domain.FormValues, error) {
	_, current := r.view.Form()

	var values domain.FormValues
	fields := []struct {
		message string
		current string
		target  *string
	}{
		{"Address", current.Address, &values.Address},
		{"Price", current.Price, &values.Price},
		{"Size", current.Size, &values.Size},
		{"Description", current.Description, &values.Description},
	}
	for _, field := range fields {
		answer, err := r.driver.Input(ctx, InputConfig{Message: field.message, Default: field.current})
		if err != nil {
			return domain.FormValues{}, err
		}
		*field.target = answer
	}
	return values, nil
}

// askFilters спрашивает фильтры; некорректная граница считается пустой
func (r *Runner) askFilters(ctx context.Context) (domain.FilterState, error) {
	current := r.view.Filters()

	address, err := r.driver.Input(ctx, InputConfig{Message: "Address contains", Default: current.Address})
	if err != nil {
		return domain.FilterState{}, err
	}
	filters := domain.FilterState{Address: address}

	bounds := []struct {
		message string
		current *float64
		target  **float64
	}{
		{"Min price", current.MinPrice, &filters.MinPrice},
		{"Max price", current.MaxPrice, &filters.MaxPrice},
		{"Min size", current.MinSize, &filters.MinSize},
		{"Max size", current.MaxSize, &filters.MaxSize},
	}
	for _, bound := range bounds {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message: bound.message,
			Default: domain.FormatBound(bound.current),
			Help:    "Leave empty for no limit",
		})
		if err != nil {
			return domain.FilterState{}, err
		}
		*bound.target = domain.ParseBound(answer)
	}
	return filters, nil
}

// pickProperty предлагает выбрать запись текущей страницы; ok=false - выбор отменен
func (r *Runner) pickProperty(ctx context.Context, message string) (int64, bool, error) {
	rows := r.view.List().Rows
	if len(rows) == 0 {
		return 0, false, r.driver.Info(ctx, "No properties on this page")
	}

	options := make([]string, 0, len(rows)+1)
	for _, p := range rows {
		options = append(options, propertyOption(p))
	}
	options = append(options, "Back")

	index, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return 0, false, err
	}
	if index < 0 || index >= len(rows) {
		return 0, false, nil
	}
	return rows[index].ID, true, nil
}

func propertyOption(p domain.Property) string {
	var b strings.Builder
	b.WriteString("#")
	b.WriteString(strconv.FormatInt(p.ID, 10))
	b.WriteString(" ")
	b.WriteString(viewfmt.PlainText(p.Address))
	b.WriteString(" (")
	b.WriteString(viewfmt.Number(p.Price))
	b.WriteString(")")
	return b.String()
}
