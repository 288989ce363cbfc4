package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"property-client/internal/adapters/viewfmt"
	"property-client/internal/core/domain"
	"property-client/internal/core/port"
)

const descriptionWidth = 40

var (
	_ port.ViewPort      = (*View)(nil)
	_ port.ConfirmerPort = (*View)(nil)
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// View печатает состояние контроллера в терминал и запоминает его,
// чтобы Runner мог подставить текущие значения в вопросы.
type View struct {
	driver PromptDriver

	mu       sync.Mutex
	out      io.Writer
	list     domain.ListView
	mode     domain.FormMode
	form     domain.FormValues
	filters  domain.FilterState
	message  domain.Message
	lastMode string
}

func NewView(out io.Writer, driver PromptDriver) *View {
	return &View{
		out:    out,
		driver: driver,
		list:   domain.NewListView(nil, 0, 0),
	}
}

func (v *View) RenderList(view domain.ListView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.list = view
	fmt.Fprintln(v.out)
	if !v.filters.IsEmpty() {
		fmt.Fprintln(v.out, mutedStyle.Render("Filters: "+describeFilters(v.filters)))
	}
	fmt.Fprintln(v.out, renderTable(view))
	fmt.Fprintln(v.out, view.PageLabel)
}

// RenderMessage печатает новое сообщение; исчезновение сообщения в терминале не рисуется
func (v *View) RenderMessage(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.message = msg
	if msg.IsZero() {
		return
	}
	if msg.IsError {
		fmt.Fprintln(v.out, errorStyle.Render("✗ "+msg.Text))
		return
	}
	fmt.Fprintln(v.out, successStyle.Render("✓ "+msg.Text))
}

func (v *View) RenderForm(mode domain.FormMode, values domain.FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = mode
	v.form = values
	if mode.String() == v.lastMode {
		return
	}
	v.lastMode = mode.String()
	if id, ok := mode.EditID(); ok {
		fmt.Fprintf(v.out, "%s #%d\n", mode.Title(), id)
		return
	}
	fmt.Fprintln(v.out, mode.Title())
}

func (v *View) RenderFilters(filters domain.FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = filters
}

// ScrollToTop в терминале не нужен
func (v *View) ScrollToTop() {}

// Confirm задает вопрос да/нет. Прерванный вопрос считается отказом.
func (v *View) Confirm(ctx context.Context, prompt string) (bool, error) {
	confirmed, err := v.driver.Confirm(ctx, ConfirmConfig{Message: prompt})
	if errors.Is(err, ErrAborted) {
		return false, nil
	}
	return confirmed, err
}

func (v *View) List() domain.ListView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.list
}

func (v *View) Form() (domain.FormMode, domain.FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode, v.form
}

func (v *View) Filters() domain.FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

func (v *View) Message() domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}

func renderTable(view domain.ListView) string {
	rows := make([][]string, 0, len(view.Rows))
	for _, p := range view.Rows {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			viewfmt.PlainText(p.Address),
			viewfmt.Number(p.Price),
			viewfmt.Number(p.Size),
			viewfmt.Truncate(viewfmt.PlainText(p.Description), descriptionWidth),
		})
	}
	if view.Empty() {
		rows = append(rows, []string{"", "No results", "", "", ""})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Address", "Price", "Size", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func describeFilters(f domain.FilterState) string {
	var parts []string
	if address := f.NormalizedAddress(); address != "" {
		parts = append(parts, fmt.Sprintf("address~%q", viewfmt.PlainText(address)))
	}
	appendBound := func(name string, bound *float64) {
		if bound != nil {
			parts = append(parts, name+"="+viewfmt.Number(*bound))
		}
	}
	appendBound("minPrice", f.MinPrice)
	appendBound("maxPrice", f.MaxPrice)
	appendBound("minSize", f.MinSize)
	appendBound("maxSize", f.MaxSize)
	return strings.Join(parts, ", ")
}
