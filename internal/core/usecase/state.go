package usecase

import "property-client/internal/core/domain"

// ClientState - состояние клиента: текущая страница, фильтры, режим формы.
// Изменяется только контроллером, наружу отдается копией через Snapshot.
type ClientState struct {
	currentPage int
	totalPages  int
	rows        []domain.Property
	filters     domain.FilterState
	mode        domain.FormMode
	form        domain.FormValues
}

func (s ClientState) CurrentPage() int            { return s.currentPage }
func (s ClientState) TotalPages() int             { return s.totalPages }
func (s ClientState) Filters() domain.FilterState { return s.filters }
func (s ClientState) Mode() domain.FormMode       { return s.mode }
func (s ClientState) Form() domain.FormValues     { return s.form }
func (s ClientState) ListView() domain.ListView {
	return domain.NewListView(s.rows, s.currentPage, s.totalPages)
}
func (s ClientState) CanPrev() bool { return s.currentPage > 0 }
func (s ClientState) CanNext() bool { return s.currentPage < s.totalPages-1 }

// Rows возвращает копию строк текущей страницы
func (s ClientState) Rows() []domain.Property {
	rows := make([]domain.Property, len(s.rows))
	copy(rows, s.rows)
	return rows
}

func (s *ClientState) applyPage(page *domain.PageResult) {
	s.currentPage = page.Number
	s.totalPages = page.TotalPages
	s.rows = make([]domain.Property, len(page.Content))
	copy(s.rows, page.Content)
}

func (s *ClientState) startEdit(p domain.Property) {
	s.mode = domain.EditMode(p.ID)
	s.form = domain.FormValuesFromProperty(p)
}

func (s *ClientState) resetForm() {
	s.mode = domain.CreateMode()
	s.form = domain.FormValues{}
}

func (s ClientState) clone() ClientState {
	cloned := s
	cloned.rows = s.Rows()
	return cloned
}
