package usecase

import (
	"context"
	"errors"
	"sync"

	"property-client/internal/core/domain"
)

type formRender struct {
	mode   domain.FormMode
	values domain.FormValues
}

// recordingView запоминает все вызовы контроллера
type recordingView struct {
	mu       sync.Mutex
	lists    []domain.ListView
	messages []domain.Message
	forms    []formRender
	filters  []domain.FilterState
	scrolls  int
}

func (v *recordingView) RenderList(view domain.ListView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lists = append(v.lists, view)
}

func (v *recordingView) RenderMessage(msg domain.Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, msg)
}

func (v *recordingView) RenderForm(mode domain.FormMode, values domain.FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.forms = append(v.forms, formRender{mode: mode, values: values})
}

func (v *recordingView) RenderFilters(filters domain.FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = append(v.filters, filters)
}

func (v *recordingView) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrolls++
}

func (v *recordingView) lastMessage() domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.messages) == 0 {
		return domain.Message{}
	}
	return v.messages[len(v.messages)-1]
}

func (v *recordingView) lastList() domain.ListView {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.lists) == 0 {
		return domain.ListView{}
	}
	return v.lists[len(v.lists)-1]
}

func (v *recordingView) lastForm() formRender {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.forms) == 0 {
		return formRender{}
	}
	return v.forms[len(v.forms)-1]
}

func (v *recordingView) listCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.lists)
}

type stubConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (c *stubConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, c.err
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.PropertyChangedEvent
	err    error
}

func (e *recordingEvents) PublishPropertyChanged(_ context.Context, event domain.PropertyChangedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

var errNetwork = errors.New("connection refused")

// fakeAPI - бэкенд в памяти; поведение отдельных операций можно переопределить
type fakeAPI struct {
	mu         sync.Mutex
	properties []domain.Property
	nextID     int64

	listFn   func(ctx context.Context, query domain.ListQuery) (*domain.PageResult, error)
	getErr   error
	saveErr  error
	delErr   error
	queries  []domain.ListQuery
	created  []domain.PropertyInput
	updated  map[int64]domain.PropertyInput
	deleted  []int64
	getCalls int
}

func newFakeAPI(properties ...domain.Property) *fakeAPI {
	api := &fakeAPI{updated: map[int64]domain.PropertyInput{}}
	for _, p := range properties {
		api.properties = append(api.properties, p)
		if p.ID > api.nextID {
			api.nextID = p.ID
		}
	}
	return api
}

func (a *fakeAPI) List(ctx context.Context, query domain.ListQuery) (*domain.PageResult, error) {
	a.mu.Lock()
	a.queries = append(a.queries, query)
	listFn := a.listFn
	a.mu.Unlock()

	if listFn != nil {
		return listFn(ctx, query)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	total := (len(a.properties) + query.Size - 1) / query.Size
	start := query.Page * query.Size
	end := start + query.Size
	if start > len(a.properties) {
		start = len(a.properties)
	}
	if end > len(a.properties) {
		end = len(a.properties)
	}
	content := make([]domain.Property, end-start)
	copy(content, a.properties[start:end])
	return &domain.PageResult{Content: content, Number: query.Page, TotalPages: total}, nil
}

func (a *fakeAPI) Get(_ context.Context, id int64) (*domain.Property, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.getCalls++
	if a.getErr != nil {
		return nil, a.getErr
	}
	for _, p := range a.properties {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, &domain.APIError{Operation: "get", StatusCode: 404}
}

func (a *fakeAPI) Create(_ context.Context, input domain.PropertyInput) (*domain.Property, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.created = append(a.created, input)
	if a.saveErr != nil {
		return nil, a.saveErr
	}
	a.nextID++
	p := domain.Property{ID: a.nextID, Address: input.Address, Price: input.Price, Size: input.Size, Description: input.Description}
	a.properties = append(a.properties, p)
	return &p, nil
}

func (a *fakeAPI) Update(_ context.Context, id int64, input domain.PropertyInput) (*domain.Property, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updated[id] = input
	if a.saveErr != nil {
		return nil, a.saveErr
	}
	p := domain.Property{ID: id, Address: input.Address, Price: input.Price, Size: input.Size, Description: input.Description}
	for i := range a.properties {
		if a.properties[i].ID == id {
			a.properties[i] = p
		}
	}
	return &p, nil
}

func (a *fakeAPI) Delete(_ context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, id)
	if a.delErr != nil {
		return a.delErr
	}
	for i, p := range a.properties {
		if p.ID == id {
			a.properties = append(a.properties[:i], a.properties[i+1:]...)
			break
		}
	}
	return nil
}

func (a *fakeAPI) lastQuery() domain.ListQuery {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.queries[len(a.queries)-1]
}

// calls возвращает число обращений к API, кроме запросов списка
func (a *fakeAPI) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.getCalls + len(a.created) + len(a.updated) + len(a.deleted)
}

func (a *fakeAPI) queryCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queries)
}

func sampleProperties(n int) []domain.Property {
	properties := make([]domain.Property, 0, n)
	for i := 1; i <= n; i++ {
		properties = append(properties, domain.Property{
			ID:      int64(i),
			Address: "Street " + string(rune('A'+i-1)),
			Price:   float64(i * 1000),
			Size:    float64(i * 10),
		})
	}
	return properties
}
