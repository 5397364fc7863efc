package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "eventdesk/pkg/platform/audit"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	store := New(dir)

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	checkIn := audit.NewEvent(audit.EventAttendeeCheckedIn, "A1", "")
	checkIn.Timestamp = at
	imported := audit.NewEvent(audit.EventAttendeesImported, "", "added=2")
	imported.Timestamp = at
	require.NoError(t, store.Append(ctx, checkIn))
	require.NoError(t, store.Append(ctx, imported))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []audit.Event{checkIn, imported}, all)

	mine, err := store.ListBySubject(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, []audit.Event{checkIn}, mine)

	raw, err := os.ReadFile(filepath.Join(dir, LogName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"action":"attendee_checked_in"`)
	assert.Contains(t, string(raw), `"category":"data"`)
}
