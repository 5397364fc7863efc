package identifier

import (
	"crypto/rand"
	"fmt"
	"image/color"
	"math/big"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"eventdesk/internal/attendee/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
	qrSize       = 330
)

// Palette is the foreground/background pair a role's QR code is drawn with.
type Palette struct {
	Fill color.Color
	Back color.Color
}

var (
	darkBlue = color.RGBA{R: 0x00, G: 0x00, B: 0x8b, A: 0xff}
	red      = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	yellow   = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}

	defaultPalette = Palette{Fill: color.Black, Back: color.White}

	rolePalettes = map[string]Palette{
		"organiser": {Fill: color.White, Back: darkBlue},
		"speaker":   {Fill: color.Black, Back: red},
		"attendee":  {Fill: color.Black, Back: yellow},
	}
)

// PaletteFor returns the colours for role, matched case-insensitively.
func PaletteFor(role string) Palette {
	if p, ok := rolePalettes[strings.ToLower(strings.TrimSpace(role))]; ok {
		return p
	}
	return defaultPalette
}

// QRGenerator issues short scanner-friendly codes and writes them as PNG QR codes.
type QRGenerator struct {
	size int
}

func NewQRGenerator() *QRGenerator {
	return &QRGenerator{size: qrSize}
}

// Generate returns an 8-character [A-Z0-9] code.
func (g *QRGenerator) Generate() (string, error) {
	var b strings.Builder
	b.Grow(codeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for range codeLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// EmitCredential writes <dir>/<email>.png encoding the identifier.
func (g *QRGenerator) EmitCredential(a *models.Attendee, dir string) (string, error) {
	c, err := g.Render(a)
	if err != nil {
		return "", err
	}
	return writeCredential(a, c, dir)
}

// Render draws the attendee's identifier as a role-coloured PNG.
func (g *QRGenerator) Render(a *models.Attendee) (*Credential, error) {
	q, err := qrcode.New(a.Identifier, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	p := PaletteFor(a.Role)
	q.ForegroundColor = p.Fill
	q.BackgroundColor = p.Back
	png, err := q.PNG(g.size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return &Credential{ContentType: "image/png", Ext: "png", Body: png}, nil
}
