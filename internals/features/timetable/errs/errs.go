// file: internals/features/timetable/errs/errs.go
package errs

import "errors"

// Kind mengelompokkan error timetable untuk dipetakan ke response HTTP.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindRange
	KindMalformedResponse
	KindServiceUnavailable
)

var (
	ErrValidation         = errors.New("validation error")
	ErrRange              = errors.New("range error")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnknown            = errors.New("unknown failure")
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindRange:
		return "RangeError"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	default:
		return "UnknownFailure"
	}
}

// KindOf: error yang tidak membungkus sentinel di atas dianggap UnknownFailure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrRange):
		return KindRange
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrServiceUnavailable):
		return KindServiceUnavailable
	default:
		return KindUnknown
	}
}

// FieldError membawa detail per-field untuk ValidationError.
type FieldError struct {
	Fields map[string][]string
}

func (e *FieldError) Error() string { return ErrValidation.Error() }

func (e *FieldError) Unwrap() error { return ErrValidation }

func NewFieldError(field, msg string) *FieldError {
	return &FieldError{Fields: map[string][]string{field: {msg}}}
}
