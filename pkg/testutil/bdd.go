package testutil

import (
	"strings"
	"testing"
)

// Desk scenarios (check in, then collect, then export) are written as nested
// steps so `go test -v` prints them as a Given/When/Then script. A failed
// step stops the enclosing one: later steps assume earlier ones held.

func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

// And continues the previous step with another check of the same kind.
func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "And", desc, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !t.Run(keyword+" "+strings.TrimSpace(desc), fn) {
		t.FailNow()
	}
}
