package domain

import (
	"fmt"
	"strings"
)

// PageSize - фиксированный размер страницы списка
const PageSize = 5

// Property - объект недвижимости в том виде, в котором его отдает бэкенд.
// ID == 0 означает, что объект еще не сохранен.
type Property struct {
	ID          int64
	Address     string
	Price       float64
	Size        float64
	Description string
}

// IsPersisted сообщает, присвоен ли объекту идентификатор сервером
func (p Property) IsPersisted() bool {
	return p.ID > 0
}

// PropertyInput - проверенные данные формы для создания/обновления.
type PropertyInput struct {
	Address     string
	Price       float64
	Size        float64
	Description string
}

// PageResult - одна страница списка.
type PageResult struct {
	Content    []Property
	Number     int
	TotalPages int
}

// FilterState - фильтры списка. nil/пустое значение означает "без ограничения"
// и не должно попадать в запрос.
type FilterState struct {
	Address  string
	MinPrice *float64
	MaxPrice *float64
	MinSize  *float64
	MaxSize  *float64
}

// NormalizedAddress возвращает подстроку адреса без пробелов по краям
func (f FilterState) NormalizedAddress() string {
	return strings.TrimSpace(f.Address)
}

func (f FilterState) IsEmpty() bool {
	return f.NormalizedAddress() == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinSize == nil && f.MaxSize == nil
}

// ListQuery - параметры запроса списка
type ListQuery struct {
	Page    int
	Size    int
	Filters FilterState
}

// ListView - все, что нужно представлению, чтобы нарисовать таблицу и пагинацию.
type ListView struct {
	Rows        []Property
	CurrentPage int
	TotalPages  int
	PageLabel   string
	CanPrev     bool
	CanNext     bool
}

// Empty - на странице нет ни одной записи, вместо таблицы выводится строка "No results"
func (v ListView) Empty() bool {
	return len(v.Rows) == 0
}

// NewListView строит представление страницы по текущему номеру и количеству страниц
func NewListView(rows []Property, currentPage, totalPages int) ListView {
	copied := make([]Property, len(rows))
	copy(copied, rows)

	return ListView{
		Rows:        copied,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageLabel:   PageLabel(currentPage, totalPages),
		CanPrev:     currentPage > 0,
		CanNext:     currentPage < totalPages-1,
	}
}

// PageLabel формирует подпись вида "Page 2 of 7".
// Для пустого результата выводится "Page 0 of 0".
func PageLabel(currentPage, totalPages int) string {
	if totalPages <= 0 {
		return "Page 0 of 0"
	}
	return fmt.Sprintf("Page %d of %d", currentPage+1, totalPages)
}
