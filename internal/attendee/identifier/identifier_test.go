package identifier

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"eventdesk/internal/attendee/models"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func newAttendee(t *testing.T, identifier, role string) *models.Attendee {
	t.Helper()
	a, err := models.NewAttendee(identifier, "Ann Lee", "Ann@Example.com", "555-0100", role)
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    Kind
		want    any
		wantErr bool
	}{
		{kind: KindToken, want: &TokenGenerator{}},
		{kind: "", want: &TokenGenerator{}},
		{kind: " QR ", want: &QRGenerator{}},
		{kind: "barcode", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			g, err := New(tt.kind)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
		})
	}
}

func TestTokenGenerator(t *testing.T) {
	g := NewTokenGenerator()

	t.Run("generates distinct uuids", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			id, err := g.Generate()
			require.NoError(t, err)
			_, err = uuid.Parse(id)
			require.NoError(t, err)
			_, dup := seen[id]
			require.False(t, dup, "duplicate identifier %s", id)
			seen[id] = struct{}{}
		}
	})

	t.Run("writes identity fields as text", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "credentials")
		a := newAttendee(t, "tok-1", "Speaker")

		path, err := g.EmitCredential(a, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ann@example.com.txt"), path)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var got textCredential
		require.NoError(t, yaml.Unmarshal(raw, &got))
		assert.Equal(t, textCredential{
			Name:       "Ann Lee",
			Email:      "ann@example.com",
			Phone:      "555-0100",
			Role:       "Speaker",
			Identifier: "tok-1",
		}, got)
	})

	t.Run("keeps separate files for addresses that differ only in escaped characters", func(t *testing.T) {
		dir := t.TempDir()
		slash, err := models.NewAttendee("tok-slash", "Ann", "a/b@x.com", "", "")
		require.NoError(t, err)
		underscore, err := models.NewAttendee("tok-underscore", "Bo", "a_b@x.com", "", "")
		require.NoError(t, err)

		first, err := g.EmitCredential(slash, dir)
		require.NoError(t, err)
		second, err := g.EmitCredential(underscore, dir)
		require.NoError(t, err)
		require.NotEqual(t, first, second)
		assert.Equal(t, dir, filepath.Dir(first))

		for path, want := range map[string]string{first: "tok-slash", second: "tok-underscore"} {
			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			var got textCredential
			require.NoError(t, yaml.Unmarshal(raw, &got))
			assert.Equal(t, want, got.Identifier)
		}
	})

	t.Run("does not mutate the attendee", func(t *testing.T) {
		a := newAttendee(t, "tok-2", "")
		before := a.Clone()
		_, err := g.EmitCredential(a, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, before, a)
	})
}

func TestQRGenerator(t *testing.T) {
	g := NewQRGenerator()

	t.Run("generates 8 character codes", func(t *testing.T) {
		for range 50 {
			code, err := g.Generate()
			require.NoError(t, err)
			assert.Regexp(t, codePattern, code)
		}
	})

	t.Run("writes a png coloured by role", func(t *testing.T) {
		dir := t.TempDir()
		a := newAttendee(t, "AB12CD34", "speaker")

		path, err := g.EmitCredential(a, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "ann@example.com.png"), path)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, qrSize, img.Bounds().Dx())

		// The quiet zone in the corner is drawn with the background colour.
		r, gg, b, _ := img.At(0, 0).RGBA()
		wr, wg, wb, _ := red.RGBA()
		assert.Equal(t, []uint32{wr, wg, wb}, []uint32{r, gg, b})
	})

	t.Run("fails when the directory cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := g.EmitCredential(newAttendee(t, "AB12CD34", ""), filepath.Join(blocker, "sub"))
		require.Error(t, err)
	})
}

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		role string
		want Palette
	}{
		{role: "Organiser", want: Palette{Fill: color.White, Back: darkBlue}},
		{role: "SPEAKER", want: Palette{Fill: color.Black, Back: red}},
		{role: " attendee ", want: Palette{Fill: color.Black, Back: yellow}},
		{role: "Volunteer", want: defaultPalette},
		{role: "", want: defaultPalette},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, PaletteFor(tt.role))
		})
	}
}
