package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormMode - режим формы: создание (без цели) или редактирование записи с id.
// Нулевое значение - режим создания.
type FormMode struct {
	editID int64
}

func CreateMode() FormMode {
	return FormMode{}
}

func EditMode(id int64) FormMode {
	return FormMode{editID: id}
}

func (m FormMode) IsEdit() bool {
	return m.editID > 0
}

// EditID возвращает id редактируемой записи, если форма в режиме редактирования
func (m FormMode) EditID() (int64, bool) {
	return m.editID, m.IsEdit()
}

func (m FormMode) Title() string {
	if m.IsEdit() {
		return "Edit property"
	}
	return "Create property"
}

func (m FormMode) SubmitLabel() string {
	if m.IsEdit() {
		return "Update"
	}
	return "Save"
}

// ShowCancel - кнопка отмены редактирования видна только в режиме Edit
func (m FormMode) ShowCancel() bool {
	return m.IsEdit()
}

func (m FormMode) String() string {
	if m.IsEdit() {
		return "edit:" + strconv.FormatInt(m.editID, 10)
	}
	return "create"
}

// FormValues - "сырые" значения полей формы, как их ввел пользователь.
type FormValues struct {
	Address     string
	Price       string
	Size        string
	Description string
}

// FormValuesFromProperty заполняет поля формы из полученной записи
func FormValuesFromProperty(p Property) FormValues {
	return FormValues{
		Address:     p.Address,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Size:        strconv.FormatFloat(p.Size, 'f', -1, 64),
		Description: p.Description,
	}
}

// Validate проверяет обязательные поля и возвращает данные для отправки.
// Адрес должен быть непустым, цена и площадь - конечными числами, отличными от нуля.
func (f FormValues) Validate() (PropertyInput, error) {
	input := PropertyInput{
		Address:     strings.TrimSpace(f.Address),
		Price:       parseFormNumber(f.Price),
		Size:        parseFormNumber(f.Size),
		Description: strings.TrimSpace(f.Description),
	}

	if input.Address == "" || !truthy(input.Price) || !truthy(input.Size) {
		return PropertyInput{}, ErrValidation
	}
	return input, nil
}

func parseFormNumber(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(value, 0) {
		return math.NaN()
	}
	return value
}

func truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// ParseBound разбирает значение числового фильтра; пустая или некорректная строка - nil
func ParseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// FormatBound - обратная к ParseBound операция для отрисовки поля фильтра
func FormatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
