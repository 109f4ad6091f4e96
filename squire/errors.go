package squire

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

type ExceptionKind string

const (
	IOError    ExceptionKind = "IOError"
	TypeError  ExceptionKind = "TypeError"
	ValueError ExceptionKind = "ValueError"
	ArityError ExceptionKind = "ArityError"
	NameError  ExceptionKind = "NameError"
)

// Exception is the only error shape scripts observe. Op and Path are set
// for scroll failures; Err keeps the underlying OS error when there is one.
type Exception struct {
	Kind    ExceptionKind
	Op      string
	Path    string
	Message string
	Err     error
}

func (e *Exception) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func (e *Exception) attribute(name string) Value {
	switch name {
	case "kind":
		return NewText(string(e.Kind))
	case "message":
		return NewText(e.Message)
	case "op":
		return NewText(e.Op)
	case "path":
		return NewText(e.Path)
	default:
		return Undefined
	}
}

func throwIO(op, path string, err error, format string, args ...any) error {
	return &Exception{Kind: IOError, Op: op, Path: path, Message: fmt.Sprintf(format, args...), Err: err}
}

func throwType(format string, args ...any) error {
	return &Exception{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func throwValue(format string, args ...any) error {
	return &Exception{Kind: ValueError, Message: fmt.Sprintf(format, args...)}
}

func throwArity(format string, args ...any) error {
	return &Exception{Kind: ArityError, Message: fmt.Sprintf(format, args...)}
}

func throwName(format string, args ...any) error {
	return &Exception{Kind: NameError, Message: fmt.Sprintf(format, args...)}
}

// AsException reports whether err is, or wraps, a script-visible exception.
func AsException(err error) (*Exception, bool) {
	var exc *Exception
	if errors.As(err, &exc) {
		return exc, true
	}
	return nil, false
}

// classifyError brings errors raised outside the bridge into the exception
// protocol. Path errors become IOErrors; anything else passes through so
// host control signals such as context cancellation keep their identity.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsException(err); ok {
		return err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return throwIO(op, pathErr.Path, err, "%s failed for '%s'", op, pathErr.Path)
	}
	return err
}
