// Package testsupport содержит fake REST-бэкенд объектов недвижимости для тестов.
package testsupport

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"property-client/internal/core/domain"
)

// BasePath - путь коллекции на fake-сервере
const BasePath = "/api/properties"

// RecordedRequest - запрос, который получил fake-бэкенд
type RecordedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	TraceID string
	Body    []byte
}

type injectedFailure struct {
	method string
	status int
}

// Backend - бэкенд в памяти: список отсортирован по id, фильтр адреса
// регистронезависимый, границы включительные
type Backend struct {
	mu         sync.Mutex
	properties map[int64]domain.Property
	nextID     int64
	failures   []injectedFailure
	requests   []RecordedRequest

	server *httptest.Server
}

type propertyJSON struct {
	ID          int64   `json:"id"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description *string `json:"description"`
}

// NewBackend запускает httptest-сервер; он закрывается в t.Cleanup
func NewBackend(t testing.TB, seed ...domain.Property) *Backend {
	t.Helper()

	b := &Backend{properties: make(map[int64]domain.Property)}
	for _, p := range seed {
		b.properties[p.ID] = p
		if p.ID > b.nextID {
			b.nextID = p.ID
		}
	}

	b.server = httptest.NewServer(b.Handler())
	t.Cleanup(b.server.Close)
	return b
}

// URL - адрес коллекции, который передается клиенту
func (b *Backend) URL() string {
	return b.server.URL + BasePath
}

// Handler - роутер fake-бэкенда
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", b.handleList)
		r.Post("/", b.handleCreate)
		r.Get("/{id}", b.handleGet)
		r.Put("/{id}", b.handleUpdate)
		r.Delete("/{id}", b.handleDelete)
	})
	return r
}

// FailNext заставляет следующий запрос с методом method вернуть status
func (b *Backend) FailNext(method string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, injectedFailure{method: method, status: status})
}

func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// LastRequest возвращает последний запрос; ok == false, если запросов не было
func (b *Backend) LastRequest() (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}, false
	}
	return b.requests[len(b.requests)-1], true
}

// Properties - все записи, отсортированные по id
func (b *Backend) Properties() []domain.Property {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortedLocked()
}

func (b *Backend) sortedLocked() []domain.Property {
	out := make([]domain.Property, 0, len(b.properties))
	for _, p := range b.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			TraceID: r.Header.Get("X-Trace-ID"),
			Body:    body,
		})
		status := 0
		for i, f := range b.failures {
			if f.method == r.Method {
				status = f.status
				b.failures = append(b.failures[:i], b.failures[i+1:]...)
				break
			}
		}
		b.mu.Unlock()

		if status != 0 {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q, "page", 0)
	if err != nil || page < 0 {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := intParam(q, "size", 20)
	if err != nil || size <= 0 {
		writeError(w, http.StatusBadRequest, "invalid size")
		return
	}

	bounds := make(map[string]*float64, 4)
	for _, key := range []string{"minPrice", "maxPrice", "minSize", "maxSize"} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+key)
			return
		}
		bounds[key] = &v
	}
	address := strings.ToLower(q.Get("address"))

	b.mu.Lock()
	all := b.sortedLocked()
	b.mu.Unlock()

	matched := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if address != "" && !strings.Contains(strings.ToLower(p.Address), address) {
			continue
		}
		if !inRange(p.Price, bounds["minPrice"], bounds["maxPrice"]) || !inRange(p.Size, bounds["minSize"], bounds["maxSize"]) {
			continue
		}
		matched = append(matched, p)
	}

	start := page * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	content := make([]propertyJSON, 0, end-start)
	for _, p := range matched[start:end] {
		content = append(content, toJSON(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"content":       content,
		"number":        page,
		"size":          size,
		"totalPages":    int(math.Ceil(float64(len(matched)) / float64(size))),
		"totalElements": len(matched),
	})
}

func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	p, found := b.properties[id]
	b.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toJSON(p))
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProperty(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	b.nextID++
	p.ID = b.nextID
	b.properties[p.ID] = p
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, toJSON(p))
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := decodeProperty(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	_, found := b.properties[id]
	if found {
		p.ID = id
		b.properties[id] = p
	}
	b.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, toJSON(p))
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	_, found := b.properties[id]
	delete(b.properties, id)
	b.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProperty(w http.ResponseWriter, r *http.Request) (domain.Property, bool) {
	var body propertyJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return domain.Property{}, false
	}

	p := domain.Property{Address: body.Address, Price: body.Price, Size: body.Size}
	if body.Description != nil {
		p.Description = *body.Description
	}

	switch {
	case strings.TrimSpace(p.Address) == "":
		writeError(w, http.StatusBadRequest, "address is required")
	case p.Price <= 0:
		writeError(w, http.StatusBadRequest, "price must be positive")
	case p.Size <= 0:
		writeError(w, http.StatusBadRequest, "size must be positive")
	case utf8.RuneCountInString(p.Description) > 1000:
		writeError(w, http.StatusBadRequest, "description is too long")
	default:
		return p, true
	}
	return domain.Property{}, false
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func inRange(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func toJSON(p domain.Property) propertyJSON {
	out := propertyJSON{ID: p.ID, Address: p.Address, Price: p.Price, Size: p.Size}
	if p.Description != "" {
		description := p.Description
		out.Description = &description
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
