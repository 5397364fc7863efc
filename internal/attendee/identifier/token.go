package identifier

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"eventdesk/internal/attendee/models"
)

// TokenGenerator issues random UUIDs and writes a plain-text credential.
type TokenGenerator struct{}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

func (g *TokenGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// textCredential is the document written by TokenGenerator.
type textCredential struct {
	Name       string `yaml:"Name"`
	Email      string `yaml:"Email"`
	Phone      string `yaml:"Phone"`
	Role       string `yaml:"Role"`
	Identifier string `yaml:"Identifier"`
}

// Render encodes the identity fields as a small YAML document.
func (g *TokenGenerator) Render(a *models.Attendee) (*Credential, error) {
	body, err := yaml.Marshal(textCredential{
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Role:       a.Role,
		Identifier: a.Identifier,
	})
	if err != nil {
		return nil, fmt.Errorf("encode credential: %w", err)
	}
	return &Credential{ContentType: "text/plain; charset=utf-8", Ext: "txt", Body: body}, nil
}

// EmitCredential writes <dir>/<email>.txt.
func (g *TokenGenerator) EmitCredential(a *models.Attendee, dir string) (string, error) {
	c, err := g.Render(a)
	if err != nil {
		return "", err
	}
	return writeCredential(a, c, dir)
}
