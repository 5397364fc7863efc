package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventdesk/internal/attendee/models"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []models.ImportRow
	}{
		{
			name: "reads required and optional columns",
			in:   "Name,Email,Phone,Role\nAnn,ann@x.com,555,Speaker\nBo,bo@x.com,,\n",
			want: []models.ImportRow{
				{Name: "Ann", Email: "ann@x.com", Phone: "555", Role: "Speaker"},
				{Name: "Bo", Email: "bo@x.com"},
			},
		},
		{
			name: "matches headers case-insensitively in any order",
			in:   " EMAIL ,company,name\nann@x.com,Acme,Ann\n",
			want: []models.ImportRow{{Name: "Ann", Email: "ann@x.com"}},
		},
		{
			name: "strips a byte order mark",
			in:   "\ufeffName,Email\nAnn,ann@x.com\n",
			want: []models.ImportRow{{Name: "Ann", Email: "ann@x.com"}},
		},
		{
			name: "missing email column leaves every email blank",
			in:   "Name,Phone\nAnn,555\nBo,556\n",
			want: []models.ImportRow{
				{Name: "Ann", Phone: "555"},
				{Name: "Bo", Phone: "556"},
			},
		},
		{
			name: "short rows and blank lines",
			in:   "Name,Email,Role\nAnn\n,,\nBo,bo@x.com\n",
			want: []models.ImportRow{
				{Name: "Ann"},
				{Name: "Bo", Email: "bo@x.com"},
			},
		},
		{
			name: "header only",
			in:   "Name,Email\n",
		},
		{
			name: "empty input",
			in:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("Name,Email\n\"Ann,ann@x.com\n"))
	require.Error(t, err)
}
