package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	kv := []any{"identifier", "A1", "added", 3, 42, "ignored", "dangling"}

	assert.Equal(t, "A1", ExtractString(kv, "identifier"))
	assert.Equal(t, "", ExtractString(kv, "added"))
	assert.Equal(t, "", ExtractString(kv, "dangling"))
	assert.Equal(t, "", ExtractString(nil, "identifier"))
}
