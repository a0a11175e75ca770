// Package assistant membungkus Gemini (google.golang.org/genai) untuk dua kebutuhan:
// kalimat motivasi (teks bebas) dan reverse geocoding (JSON terstruktur).
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var ErrDisabled = errors.New("assistant disabled: GEMINI_API_KEY is not set")

//go:generate mockgen -source=assistant.go -destination=mock/assistant_mock.go -package=mock
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON meminta objek JSON dengan field string yang semuanya wajib, lalu decode ke out.
	GenerateJSON(ctx context.Context, prompt string, fields map[string]string, out any) error
}

type geminiClient struct {
	models *genai.Models
	model  string
}

// New membuat client Gemini. Tanpa API key, client yang dikembalikan selalu gagal
// dengan ErrDisabled sehingga pemanggil jatuh ke teks fallback.
func New(ctx context.Context, apiKey, model string) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return disabled{}, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{models: c.Models, model: model}, nil
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (c *geminiClient) GenerateJSON(ctx context.Context, prompt string, fields map[string]string, out any) error {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
	}
	for name, desc := range fields {
		schema.Properties[name] = &genai.Schema{Type: genai.TypeString, Description: desc}
		schema.Required = append(schema.Required, name)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(resp.Text())
	if raw == "" {
		return errors.New("empty response")
	}
	return json.Unmarshal([]byte(raw), out)
}

type disabled struct{}

func (disabled) GenerateText(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (disabled) GenerateJSON(context.Context, string, map[string]string, any) error {
	return ErrDisabled
}
