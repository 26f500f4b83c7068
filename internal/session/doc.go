// Package session carries analytics commands across one request boundary.
//
// Commands queued for the next request are encoded to segments and written to
// a Flash under FlashKey as two phases, early and normal. On the following
// request the Adapter decodes both phases back into commands.
package session
