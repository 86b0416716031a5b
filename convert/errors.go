package convert

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies why a descriptor could not be converted.
type ErrorCode string

const (
	// CodeUnknownPrimitive: a member access names no known primitive.
	CodeUnknownPrimitive ErrorCode = "unknown_primitive"

	// CodeUnknownMethod: an invocation calls none of the composite forms.
	CodeUnknownMethod ErrorCode = "unknown_method"

	// CodeMissingArgument: a composite call lacks the argument shape it needs,
	// e.g. shape() without an object literal.
	CodeMissingArgument ErrorCode = "missing_argument"

	// CodeUnknownNamespace: a member chain is rooted neither at PropTypes nor
	// at the configured namespace, e.g. Other.PropTypes.string.
	CodeUnknownNamespace ErrorCode = "unknown_namespace"

	// CodeUnsupportedDescriptor: the node kind cannot appear in this position.
	CodeUnsupportedDescriptor ErrorCode = "unsupported_descriptor"
)

// ErrUnsupported matches every *UnsupportedError with errors.Is.
var ErrUnsupported = errors.New("unsupported descriptor")

// UnsupportedError reports a descriptor with no annotation equivalent.
type UnsupportedError struct {
	Code    ErrorCode
	Message string

	// Path locates the failing node from the conversion root, outermost
	// first, e.g. ["user", "shape", "name"].
	Path []string
}

func (e *UnsupportedError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(e.Path, "."), e.Code, e.Message)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

func unsupported(code ErrorCode, format string, args ...any) *UnsupportedError {
	return &UnsupportedError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// within prefixes the path of an *UnsupportedError with segment.
// Other errors are returned unchanged.
func within(err error, segment string) error {
	var ue *UnsupportedError
	if !errors.As(err, &ue) {
		return err
	}
	path := make([]string, 0, len(ue.Path)+1)
	path = append(path, segment)
	path = append(path, ue.Path...)
	return &UnsupportedError{Code: ue.Code, Message: ue.Message, Path: path}
}
