package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@x.com", Normalize("  A@X.com "))
	assert.Equal(t, Normalize("A@X.com"), Normalize("a@x.com "))
}

func TestLooksValid(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"ann@x.com", true},
		{"ann@", false},
		{"@x.com", false},
		{"ann", false},
		{"a@b@c", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.valid, LooksValid(tt.in))
		})
	}
}

func TestFileStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" Ann@X.com", "ann@x.com"},
		{"ann.lee+desk@x-y.com", "ann.lee+desk@x-y.com"},
		{"a/b@x.com", "a_2fb@x.com"},
		{`a\b@x.com`, "a_5cb@x.com"},
		{"a_b@x.com", "a_5fb@x.com"},
		{"a_2fb@x.com", "a_5f2fb@x.com"},
		{"é@x.com", "_c3_a9@x.com"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FileStem(tt.in))
		})
	}

	t.Run("distinct addresses never share a stem", func(t *testing.T) {
		addrs := []string{"a/b@x.com", "a_b@x.com", `a\b@x.com`, "a:b@x.com", "a_2fb@x.com", "a_5fb@x.com"}
		seen := make(map[string]string, len(addrs))
		for _, addr := range addrs {
			stem := FileStem(addr)
			prev, dup := seen[stem]
			assert.False(t, dup, "%q and %q both map to %q", prev, addr, stem)
			seen[stem] = addr
		}
	})
}
