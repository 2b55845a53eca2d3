package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error ответ бэкенда с ошибкой. Тело пробрасывается вызывающему как есть:
// либо структурированный JSON (Structured == true, сообщения в Messages),
// либо строка (Text)
type Error struct {
	StatusCode int
	Text       string
	Messages   []string
	Structured bool
	RequestID  string
}

func (e *Error) Error() string {
	detail := e.Detail()
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, detail)
}

// IsText true если бэкенд ответил строкой, а не структурой
func (e *Error) IsText() bool {
	return !e.Structured && e.Text != ""
}

// Detail текст ошибки для показа пользователю
func (e *Error) Detail() string {
	if e.Structured && len(e.Messages) > 0 {
		return strings.Join(e.Messages, ", ")
	}
	return e.Text
}

// AsError извлекает *Error из цепочки ошибок
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized проверяет что бэкенд отверг учётные данные (401)
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// fieldError формат ошибок валидации Spring (errors[].defaultMessage)
type fieldError struct {
	DefaultMessage string `json:"defaultMessage"`
	Field          string `json:"field"`
}

type structuredBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Errors  []fieldError `json:"errors"`
}

// newError разбирает тело ответа с ошибкой
func newError(status int, body []byte, requestID string) *Error {
	apiErr := &Error{StatusCode: status, RequestID: requestID}
	trimmed := bytes.TrimSpace(body)

	switch {
	case len(trimmed) == 0:
		return apiErr

	case trimmed[0] == '{':
		var parsed structuredBody
		if err := json.Unmarshal(trimmed, &parsed); err != nil {
			apiErr.Text = string(trimmed)
			return apiErr
		}
		apiErr.Structured = true
		for _, fe := range parsed.Errors {
			if fe.DefaultMessage != "" {
				apiErr.Messages = append(apiErr.Messages, fe.DefaultMessage)
			}
		}
		if len(apiErr.Messages) == 0 {
			switch {
			case parsed.Message != "":
				apiErr.Messages = []string{parsed.Message}
			case parsed.Error != "":
				apiErr.Messages = []string{parsed.Error}
			}
		}
		return apiErr

	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			apiErr.Text = text
			return apiErr
		}
	}

	apiErr.Text = string(trimmed)
	return apiErr
}
