// Package testutil provides deterministic session id generators for tests.
package testutil
