/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity stored under the

	_c:<package name>

key. Configuration is loaded from the genesis file (conf.<package name>) and
can later be updated by its owner with an update configuration message.
*/
package gconf
