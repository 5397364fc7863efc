package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendeemetrics "eventdesk/internal/attendee/metrics"
	"eventdesk/internal/attendee/models"
	"eventdesk/internal/platform/config"
	dErrors "eventdesk/pkg/domain-errors"
)

func testConfig(t *testing.T) config.Server {
	t.Helper()
	return config.Server{
		DataDir:        t.TempDir(),
		CredentialKind: "token",
		Store:          config.StoreFile,
		AuditBuffer:    8,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("file store with async audit and metrics", func(t *testing.T) {
		cfg := testConfig(t)
		m := attendeemetrics.NewWith(prometheus.NewRegistry())

		desk, err := Build(ctx, cfg, discard(), WithMetrics(m), WithAsyncAudit())
		require.NoError(t, err)

		_, err = desk.Manager.Register(ctx, models.ImportRow{Name: "Ann", Email: "ann@example.com"}, true)
		require.NoError(t, err)
		require.NoError(t, desk.Close())

		assert.FileExists(t, filepath.Join(cfg.DataDir, "attendees.json"))
		assert.FileExists(t, filepath.Join(cfg.DataDir, "generated_ids", "ann@example.com.txt"))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.AttendeesImported))

		raw, err := os.ReadFile(desk.AuditLog.Path())
		require.NoError(t, err)
		assert.Contains(t, string(raw), "attendee_registered")
	})

	t.Run("one import batch keeps a credential per attendee", func(t *testing.T) {
		cfg := testConfig(t)
		desk, err := Build(ctx, cfg, discard())
		require.NoError(t, err)
		defer desk.Close()

		res, err := desk.Manager.Import(ctx, []models.ImportRow{
			{Name: "Ann", Email: "a/b@x.com"},
			{Name: "Bo", Email: "a_b@x.com"},
		}, true)
		require.NoError(t, err)
		require.Equal(t, 2, res.Imported)
		require.Len(t, res.Artifacts, 2)
		assert.NotEqual(t, res.Artifacts[0], res.Artifacts[1])

		for i, a := range res.Attendees {
			assert.Equal(t, cfg.CredentialPath(), filepath.Dir(res.Artifacts[i]))
			raw, err := os.ReadFile(res.Artifacts[i])
			require.NoError(t, err)
			assert.Contains(t, string(raw), a.Name)
			assert.Contains(t, string(raw), a.Identifier)
		}
	})

	t.Run("unknown credential kind", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CredentialKind = "barcode"

		_, err := Build(ctx, cfg, discard())
		require.Error(t, err)
	})

	t.Run("corrupt snapshot stops startup", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "attendees.json"), []byte("{not json"), 0o644))

		_, err := Build(ctx, cfg, discard())
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeCorruptData))
	})

	t.Run("reports land in the data directory", func(t *testing.T) {
		cfg := testConfig(t)
		desk, err := Build(ctx, cfg, discard())
		require.NoError(t, err)
		defer desk.Close()

		path, err := desk.Manager.ExportReportFile(ctx, "full", "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, cfg.DataDir))
	})
}
