// Package genai is a client for the Google Generative Language REST API,
// covering the two calls the chatbot needs: text embedding and chat
// completion.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable covers transport, auth and quota failures.
	ErrUnavailable = errors.New("generative AI service unavailable")
	// ErrTimeout marks calls that exceeded the configured deadline.
	ErrTimeout = errors.New("generative AI request timed out")
)

// Config configures the client.
type Config struct {
	BaseURL     string
	APIKey      string
	EmbedModel  string
	LLMModel    string
	Temperature float64
	Timeout     time.Duration
}

type Client struct {
	http        *resty.Client
	apiKey      string
	embedModel  string
	llmModel    string
	temperature float64
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "embedding-001"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gemini-1.5-flash-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:        httpClient,
		apiKey:      cfg.APIKey,
		embedModel:  cfg.EmbedModel,
		llmModel:    cfg.LLMModel,
		temperature: cfg.Temperature,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

// Embed converts text to an embedding vector. The same model must embed
// both document chunks and queries or similarity scores are meaningless.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body := struct {
		Model   string  `json:"model"`
		Content content `json:"content"`
	}{
		Model:   "models/" + c.embedModel,
		Content: content{Parts: []part{{Text: text}}},
	}

	var out struct {
		Embedding struct {
			Values []float64 `json:"values"`
		} `json:"embedding"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:embedContent", c.embedModel))
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: embedContent returned %s", ErrUnavailable, resp.Status())
	}
	if len(out.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", ErrUnavailable)
	}
	return out.Embedding.Values, nil
}

// Generate sends the prompt to the chat model and returns the generated
// text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := struct {
		Contents         []content `json:"contents"`
		GenerationConfig struct {
			Temperature float64 `json:"temperature"`
		} `json:"generationConfig"`
	}{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body.GenerationConfig.Temperature = c.temperature

	var out struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", c.llmModel))
	if err != nil {
		return "", wrapTransportErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: generateContent returned %s", ErrUnavailable, resp.Status())
	}

	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), nil
}

func wrapTransportErr(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
