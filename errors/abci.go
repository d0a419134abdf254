package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of a successfully processed request.
	SuccessABCICode = 0

	// Errors that were not registered share this code. Outside of debug
	// mode their message is hidden from clients.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for given error.
//
// In debug mode the log is the full error with its stack trace. Otherwise
// the messages of unregistered errors and of recovered panics are replaced
// with a generic "internal error".
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	if debug {
		return abciCode(err), fmt.Sprintf("%+v", err)
	}
	err = redact(err)
	return abciCode(err), err.Error()
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first registered error found while
// unwrapping err.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true for nil and for a typed nil pointer stored in the
// error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return false
}

// redact hides every error that was not registered and every panic.
func redact(err error) error {
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return usedCodes[internalABCICode]
	}
	return err
}
