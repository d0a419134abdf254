package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer from pkg/errors
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stacktrace found while unwrapping given
// error, or nil.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// StackTrace returns the stack trace of the point where this error was
// wrapped for the first time, without the frames of this package and the
// runtime.
func (e *wrappedError) StackTrace() errors.StackTrace {
	st := stackTrace(e.parent)
	for len(st) > 0 && matchesFunc(st[0], wrapperFuncs...) {
		st = st[1:]
	}
	for l := len(st) - 1; l > 0 && matchesFunc(st[l], "runtime."); l-- {
		st = st[:l]
	}
	return st
}

// wrapperFuncs are the frames that create the error instead of causing it.
var wrapperFuncs = []string{
	"phtlc/errors.Wrap",
	"phtlc/errors.Recover",
	"phtlc/errors.WithType",
	"runtime.",
}

func matchesFunc(f errors.Frame, prefixes ...string) bool {
	name := funcName(f)
	for _, p := range prefixes {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func funcName(f errors.Frame) string {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// cut file at "github.com/"
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format works like pkg/errors, with additions.
// %s is just the error message
// %+v is the full stack trace
// %v appends a compressed [filename:line] where the error
//
//	was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	// normal output here....
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	// work with the stack trace... whole or part
	stack := e.StackTrace()
	if len(stack) == 0 {
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if s.Flag('+') {
		fmt.Fprintf(s, "\n%+v", stack)
		return
	}
	writeSimpleFrame(s, stack[0])
}
