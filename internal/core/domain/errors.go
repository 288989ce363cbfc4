package domain

import (
	"errors"
	"fmt"
)

// ErrValidation - не заполнены обязательные поля формы, запрос не отправлялся
var ErrValidation = errors.New("required fields are missing")

// APIError - бэкенд ответил статусом вне диапазона 2xx.
// 4xx и 5xx не различаются.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("property api %s: non-success status code %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("property api %s: non-success status code %d: %s", e.Operation, e.StatusCode, e.Body)
}

// StatusCodeOf возвращает HTTP-статус, если ошибка пришла от бэкенда
func StatusCodeOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// Message - текстовое сообщение для пользователя. Нулевое значение - сообщения нет.
type Message struct {
	Text    string
	IsError bool
}

func SuccessMessage(text string) Message {
	return Message{Text: text}
}

func ErrorMessage(text string) Message {
	return Message{Text: text, IsError: true}
}

func (m Message) IsZero() bool {
	return m.Text == ""
}
