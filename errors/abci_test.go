package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantCode: ErrNotFound.code,
			wantLog:  ErrNotFound.desc,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantCode: ErrNotFound.code,
			wantLog:  "bar: foo: not found",
		},
		"nil is empty message": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"wrapped stdlib is redacted": {
			err:      Wrap(fmt.Errorf("cannot connect"), "wrapped"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "secret path /home/user"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib in debug mode keeps the message": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib error",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestABCIInfoDebugStacktrace(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrState, "broken"), true)
	assert.Equal(t, ErrState.code, code)
	assert.Contains(t, log, "broken: invalid state")
	assert.Contains(t, log, "errors/abci_test.go")
}

func TestRedact(t *testing.T) {
	serr := fmt.Errorf("stdlib error")
	assert.Equal(t, internalABCILog, redact(serr).Error())
	assert.Equal(t, internalABCILog, redact(Wrap(ErrPanic, "boom")).Error())
	assert.True(t, ErrNotFound.Is(redact(Wrap(ErrNotFound, "x"))))
}
