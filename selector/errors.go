package selector

import (
	"errors"
	"strings"
)

var (
	ErrEmptyInput         = errors.New("no name/number entries in input")
	ErrInvalidTarget      = errors.New("invalid target number")
	ErrInvalidWinnerCount = errors.New("invalid number of winners")
	ErrInvalidMode        = errors.New("invalid mode")
)

// Field names used in FieldError
const (
	FieldInput      = "input"
	FieldTarget     = "target"
	FieldWinners    = "winners"
	FieldTies       = "ties"
	FieldDuplicates = "duplicates"
)

// FieldError describes why one configuration field or the input was rejected
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (fe *FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// ValidationError collects every field that failed validation. Nothing
// is selected when it is returned.
type ValidationError struct {
	Fields []*FieldError
}

func (ve *ValidationError) Error() string {
	msgs := make([]string, len(ve.Fields))
	for i, fe := range ve.Fields {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors so errors.Is matches the sentinels
func (ve *ValidationError) Unwrap() []error {
	errs := make([]error, len(ve.Fields))
	for i, fe := range ve.Fields {
		errs[i] = fe
	}
	return errs
}

// Field returns the error for the named field, or nil
func (ve *ValidationError) Field(name string) *FieldError {
	for _, fe := range ve.Fields {
		if fe.Field == name {
			return fe
		}
	}
	return nil
}

func (ve *ValidationError) add(field, msg string, err error) {
	ve.Fields = append(ve.Fields, &FieldError{Field: field, Message: msg, Err: err})
}

// errOrNil returns ve when it holds at least one field error
func (ve *ValidationError) errOrNil() error {
	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}
