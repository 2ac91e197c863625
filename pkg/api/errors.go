package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType представляет тип ошибки при работе с API портала.
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrAuthFailed
	ErrTimeout
	ErrNetwork
	ErrRateLimit
)

// String возвращает строковое представление типа ошибки.
func (e ErrorType) String() string {
	switch e {
	case ErrAuthFailed:
		return "authentication_failed"
	case ErrTimeout:
		return "timeout"
	case ErrNetwork:
		return "network_error"
	case ErrRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// HumanMessage возвращает человекочитаемое сообщение для типа ошибки.
func (e ErrorType) HumanMessage() string {
	switch e {
	case ErrAuthFailed:
		return "Сессия истекла или нет прав. Выполните вход заново."
	case ErrTimeout:
		return "Превышено время ожидания. Сервер портала не отвечает или проблемы с сетью."
	case ErrNetwork:
		return "Сервер портала недоступен. Проверьте подключение к интернету."
	case ErrRateLimit:
		return "Превышен лимит запросов. Подождите перед следующей попыткой."
	default:
		return "Неизвестная ошибка при обращении к API портала."
	}
}

// APIError — структурированная ошибка от backend.
//
// Backend отвечает на любой не-2xx статус телом вида:
//
//	{"success": false, "errors": ["..."], "code": "ACCOUNT_NUM_CONFLICT", "fields": {"email": ["..."]}}
//
// code и fields опциональны — система не должна рассчитывать, что конкретный
// код всегда присутствует. Forms мапят известные коды на ошибки конкретных
// полей, всё остальное уходит в общий notice.
type APIError struct {
	Status int                 `json:"-"`      // HTTP статус
	Errors []string            `json:"errors"` // Человекочитаемые сообщения
	Code   string              `json:"code,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// Error реализует error интерфейс.
func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// Message возвращает первое сообщение или generic fallback.
func (e *APIError) Message() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return "An unexpected error occurred"
}

// Messages возвращает все сообщения (минимум одно — fallback).
func (e *APIError) Messages() []string {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	return []string{"An unexpected error occurred"}
}

// AsAPIError извлекает *APIError из цепочки ошибок.
//
// Возвращает nil если ошибка не от backend (сеть, timeout и т.д.).
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// ErrorCode возвращает machine-readable код из ошибки backend или "".
func ErrorCode(err error) string {
	if apiErr := AsAPIError(err); apiErr != nil {
		return apiErr.Code
	}
	return ""
}

// ClassifyError классифицирует ошибку по типу для лучшей диагностики.
//
// Анализирует ошибку и возвращает соответствующий тип:
//   - ErrAuthFailed: ошибки 401/403, unauthorized
//   - ErrTimeout: timeout, deadline exceeded
//   - ErrNetwork: connection refused, no such host
//   - ErrRateLimit: ошибки 429, Too Many Requests
//   - ErrUnknown: все остальные ошибки
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrUnknown
	}

	if apiErr := AsAPIError(err); apiErr != nil {
		switch apiErr.Status {
		case 401, 403:
			return ErrAuthFailed
		case 429:
			return ErrRateLimit
		}
		return ErrUnknown
	}

	errMsg := err.Error()
	errMsgLower := strings.ToLower(errMsg)

	// Проверка ошибок авторизации
	if strings.Contains(errMsg, "401") ||
		strings.Contains(errMsgLower, "unauthorized") ||
		strings.Contains(errMsg, "Forbidden") {
		return ErrAuthFailed
	}

	// Проверка таймаутов
	if strings.Contains(errMsgLower, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded") {
		return ErrTimeout
	}

	// Проверка сетевых ошибок
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no such host") {
		return ErrNetwork
	}

	// Проверка rate limiting
	if strings.Contains(errMsg, "429") ||
		strings.Contains(errMsg, "Too Many Requests") {
		return ErrRateLimit
	}

	return ErrUnknown
}
