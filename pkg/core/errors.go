package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BOYRAHEEM/estate-management-system-sub000/pkg/model"
)

type ErrorCode string

const (
	CodeNotFound             ErrorCode = "not_found"
	CodeConflict             ErrorCode = "conflict"
	CodeInvalidTransition    ErrorCode = "invalid_transition"
	CodeItemAlreadyReported  ErrorCode = "item_already_reported"
	CodeReferentialIntegrity ErrorCode = "referential_integrity"
	CodeValidation           ErrorCode = "validation"
)

// Error is the taxonomy surfaced to callers. Store-layer integrity errors are
// translated into it at the store boundary and never leak raw driver codes.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func WrapError(code ErrorCode, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// CodeOf returns the taxonomy code of err, or an empty code for foreign errors.
func CodeOf(err error) ErrorCode {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return ""
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func NotFoundError(kind string, id uuid.UUID) *Error {
	return NewError(CodeNotFound, "%s %s not found", kind, id)
}

// RoomOccupiedError names the employee already holding the room so the caller
// can render a specific message.
func RoomOccupiedError(roomID uuid.UUID, holder *model.Employee) *Error {
	return NewError(CodeConflict, "room %s is already assigned to %s (%s)",
		roomID, holder.Name, holder.EmployeeID)
}

func ItemAlreadyReportedError(item *model.InventoryItem) *Error {
	return NewError(CodeItemAlreadyReported,
		"item %q already has an open damage report", item.Name)
}

func InvalidTransitionError(from, to model.ReportStatus) *Error {
	return NewError(CodeInvalidTransition,
		"cannot transition damage report from %s to %s", from, to)
}
