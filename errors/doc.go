/*
Package errors implements the error registry used by every extension.

Root errors are declared once with Register(code, description). Each code
is sent back to the client as the ABCI response code, so a client can tell
apart a missing escrow from a wrong preimage without parsing the log.
Extensions declare their own root errors in their errors.go file.

Create an instance at the point of failure with Wrap or Wrapf, this
attaches a stacktrace the first time an error is wrapped:

	return errors.Wrapf(errors.ErrNotFound, "escrow %X", id)

Test for a kind with the root error Is method, it unwraps for you:

	if errors.ErrNotFound.Is(err) { ... }

Formatting with fmt:

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
