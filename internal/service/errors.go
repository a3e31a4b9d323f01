package service

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "Conflict"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindStore:
		return "StoreError"
	default:
		return "Unknown"
	}
}

// Error 业务错误，Message 可直接返回给调用方
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同类别即视为相等，支持 errors.Is(err, ErrNotFound)
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// 各类别的哨兵错误
var (
	ErrValidation         = &Error{Kind: KindValidation, Message: "Invalid input"}
	ErrConflict           = &Error{Kind: KindConflict, Message: "User already exists"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "Authentication required"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Invalid or expired token"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrStore              = &Error{Kind: KindStore, Message: "Server error"}
)

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// storeError 包装存储层错误，对外只暴露通用消息
func storeError(err error) error {
	return &Error{Kind: KindStore, Message: ErrStore.Message, Err: err}
}

// KindOf 返回错误类别，非业务错误视为存储错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// MessageOf 返回可对外展示的消息
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStore {
		return e.Message
	}
	return ErrStore.Message
}
