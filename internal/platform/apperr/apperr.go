package apperr

import (
	"errors"
	"fmt"
)

// Kind clasifica errores para que los handlers decidan el status HTTP.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindStore             Kind = "store"
	KindUpload            Kind = "upload"
	KindCascadeIncomplete Kind = "cascade_incomplete"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func Validation(op, msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg, Fields: fields}
}

func NotFound(op, msg string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg}
}

func Conflict(op, msg string) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: msg}
}

func Unauthorized(op, msg string) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: msg}
}

func Forbidden(op, msg string) *Error {
	return &Error{Kind: KindForbidden, Op: op, Message: msg}
}

// Store envuelve fallas del document store (red, permisos, etc).
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Message: "store failure", Err: err}
}

func Upload(op string, err error) *Error {
	return &Error{Kind: KindUpload, Op: op, Message: "image upload failed", Err: err}
}

func CascadeIncomplete(op, msg string, err error) *Error {
	return &Error{Kind: KindCascadeIncomplete, Op: op, Message: msg, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
