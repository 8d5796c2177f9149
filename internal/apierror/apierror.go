// Package apierror provides the canonical error envelope for all 4xx/5xx
// responses. Every error carries a stable machine-readable code so that
// clients never have to pattern-match message text.
package apierror

import "net/http"

// Code is the closed set of error codes exposed by the API.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeDuplicate    Code = "duplicate"
	CodeNotFound     Code = "not_found"
	CodeInvalidState Code = "invalid_state"
	CodeBlocked      Code = "blocked"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// BlockingItem identifies one record preventing a cascading deactivation.
type BlockingItem struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Estado string `json:"estado"`
}

// Error is both the JSON response body and a Go error value, so services can
// return it directly and handlers can map it to a status without inspecting
// message strings.
type Error struct {
	Detail   string            `json:"detail"`
	Code     Code              `json:"code"`
	Fields   map[string]string `json:"fields,omitempty"`
	Blocking []BlockingItem    `json:"blocking,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Validation wraps per-field errors. Values are codes or short messages,
// e.g. {"cpf": "duplicate"}.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Detail: "Erro de validacao", Fields: fields}
}

// Duplicate attributes a uniqueness violation to a single field.
func Duplicate(field, detail string) *Error {
	return &Error{Code: CodeDuplicate, Detail: detail, Fields: map[string]string{field: string(CodeDuplicate)}}
}

// Blocked carries the list of records preventing a cascade.
func Blocked(detail string, items []BlockingItem) *Error {
	return &Error{Code: CodeBlocked, Detail: detail, Blocking: items}
}

// Status maps a code to its HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeDuplicate, CodeInvalidState, CodeBlocked:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// From coerces err into an *Error, wrapping unknown errors as internal so
// raw DB errors never leak to clients.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return New(CodeInternal, "Erro interno do servidor")
}
