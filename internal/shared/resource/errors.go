package resource

import (
	"errors"
	"net/http"
)

// Kind classifies a failure so the handler can pick a status code.
type Kind uint8

const (
	// KindStore is any store-layer failure: connectivity, constraint violation, bad SQL.
	KindStore Kind = iota
	// KindValidation is a malformed path parameter, query filter or request body.
	KindValidation
	// KindNotFound is a by-id fetch that matched zero rows.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "store"
	}
}

// Error wraps an underlying error with its kind and the operation that failed.
type Error struct {
	Kind     Kind
	Resource string // table name
	Op       string // list, get, create, update, delete
	Err      error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Resource != "" {
		msg = e.Resource + " " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError marks err as a client input problem.
func ValidationError(resource, op string, err error) error {
	return &Error{Kind: KindValidation, Resource: resource, Op: op, Err: err}
}

// KindOf returns the kind carried by err. Errors that were never classified
// count as store errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// ToHTTPStatus converts error to HTTP status code.
// Validation is 400, NotFound 404, anything else 500.
func ToHTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
