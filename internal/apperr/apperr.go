package apperr

import (
	"errors"

	"github.com/AnyUserName/imgresize/internal/dimension"
	"github.com/AnyUserName/imgresize/internal/engine"
	"github.com/AnyUserName/imgresize/internal/intake"
)

// UserError represents an error with both technical and user-friendly messages
type UserError struct {
	Err     error
	UserMsg string
}

func (e *UserError) Error() string {
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// User-facing messages.
const (
	MsgUnsupported      = "Unsupported file type. Please use JPEG, PNG, WebP, GIF or BMP."
	MsgLoadFailed       = "Failed to load image."
	MsgInvalidSize      = "Width and height must be positive numbers."
	MsgConversionFailed = "Conversion failed. Please try different settings."
	MsgUnknown          = "Something went wrong."
)

// Wrap attaches the user-facing message for err. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return err
	}
	return &UserError{Err: err, UserMsg: Describe(err)}
}

// Describe maps an error from the conversion path to a message for users.
func Describe(err error) string {
	var ue *UserError
	switch {
	case errors.As(err, &ue):
		return ue.UserMsg
	case errors.Is(err, intake.ErrUnsupportedType):
		return MsgUnsupported
	case errors.Is(err, intake.ErrDecodeFailure),
		errors.Is(err, dimension.ErrInvalidAspectState):
		return MsgLoadFailed
	case errors.Is(err, engine.ErrNonPositiveDimension):
		return MsgInvalidSize
	case errors.Is(err, engine.ErrEncodingFailure),
		errors.Is(err, engine.ErrUnsupportedFormat):
		return MsgConversionFailed
	}
	return MsgUnknown
}
