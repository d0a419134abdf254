// Package utils contains the decorators shared by every transaction: panic
// recovery, savepoints (all or nothing state changes), logging and tagging
// of the executed action.
package utils
