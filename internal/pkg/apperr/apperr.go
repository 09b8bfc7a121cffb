package apperr

import (
	"errors"
	"fmt"
)

// Kind groups error codes by how callers should react to them.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalid
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a domain failure with a stable reason code.
type Error struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy with a caller-specific message.
func (e *Error) WithMessage(format string, args ...interface{}) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNotFound              = &Error{Code: "NOT_FOUND", Kind: KindNotFound, Message: "resource not found"}
	ErrInvalidDateRange      = &Error{Code: "INVALID_DATE_RANGE", Kind: KindInvalid, Message: "start date must not be after end date"}
	ErrInvalidSharePercent   = &Error{Code: "INVALID_SHARE_PERCENT", Kind: KindInvalid, Message: "share percent must be greater than 0 and at most 100"}
	ErrInvalidArea           = &Error{Code: "INVALID_AREA", Kind: KindInvalid, Message: "split areas do not add up to the source area"}
	ErrInvalidOwner          = &Error{Code: "INVALID_OWNER", Kind: KindInvalid, Message: "owner belongs to another building"}
	ErrInvalidMerge          = &Error{Code: "INVALID_MERGE", Kind: KindInvalid, Message: "units must be on the same floor"}
	ErrInvalidState          = &Error{Code: "INVALID_STATE", Kind: KindInvalid, Message: "unit is not current"}
	ErrLeaseRequired         = &Error{Code: "LEASE_REQUIRED", Kind: KindInvalid, Message: "active occupancy requires a lease"}
	ErrBusinessRuleViolation = &Error{Code: "BUSINESS_RULE_VIOLATION", Kind: KindInvalid, Message: "business rule violation"}
	ErrValidation            = &Error{Code: "VALIDATION_ERROR", Kind: KindInvalid, Message: "validation failed"}

	ErrOverlappingActiveLease     = &Error{Code: "OVERLAPPING_ACTIVE_LEASE", Kind: KindConflict, Message: "unit already has an active lease in this period"}
	ErrOwnerShareOverAllocated    = &Error{Code: "OWNER_SHARE_OVER_ALLOCATED", Kind: KindConflict, Message: "floor ownership would exceed 100 percent"}
	ErrOverlappingActiveOccupancy = &Error{Code: "OVERLAPPING_ACTIVE_OCCUPANCY", Kind: KindConflict, Message: "unit is actively occupied by another tenant in this period"}
)

// NotFound returns ErrNotFound naming the missing entity.
func NotFound(entity string) *Error {
	return ErrNotFound.WithMessage("%s not found", entity)
}

// As unwraps err into an *Error when it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
