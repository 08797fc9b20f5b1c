/*
Package assistant delegates natural-language questions to a language model.

PURPOSE:
  The console's AI assistant takes a free-text question plus the full
  current dataset and returns prose. This package is that delegate: it
  speaks the OpenAI-compatible chat-completions API (OpenAI, OpenRouter,
  Ollama, vLLM all accept it), serializes both collections into the
  prompt context, and hands back the model's answer text.

FAILURE CONTRACT:
  Ask returns an error on any transport, auth or decode failure. Callers
  never surface that error to the end user; they substitute the fixed
  Apology string. Nothing in here is allowed to crash the console.

CONFIGURATION:
  BaseURL and Model come from the caller; the API key is read from the
  OPENAI_API_KEY environment variable when no explicit key is set.
*/
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cortsfranco/CicedoHR/roster"
)

// Apology is the fixed user-facing answer substituted when the delegate
// fails. Spanish because the assistant answers in Spanish.
const Apology = "Lo siento, encontré un error al analizar los datos. Por favor, inténtalo de nuevo."

const systemPrompt = `Eres un analista experto en datos de Recursos Humanos. Tu tarea es responder preguntas basándote en dos conjuntos de datos JSON que te proporcionaré.

1.  **COLABORADORES**: Una lista de todos los empleados de la empresa. Cada uno tiene un 'id' único y campos como nombre, dni, legajo, cuil, puesto, estado ('Activo' o 'Inactivo'), etc.
2.  **REGISTROS**: Una lista de eventos de RRHH (INGRESO, EGRESO, SANCION, AUSENCIA). Cada registro está vinculado a un empleado a través del campo 'collaboratorId', que corresponde al 'id' de la lista de COLABORADORES.

Responde la pregunta del usuario basándote ÚNICAMENTE en los datos proporcionados.
Cruza la información de ambas listas para dar respuestas completas. Por ejemplo, si te preguntan por un nombre, busca su 'id' en COLABORADORES y luego encuentra todos sus eventos en REGISTROS.
Proporciona respuestas claras, concisas y profesionales en español. No inventes información.
Cuando te refieras a dinero, formatéalo como una moneda (por ejemplo, $1,234.56).`

// =============================================================================
// CLIENT
// =============================================================================

// Client is an OpenAI-compatible chat-completions client.
type Client struct {
	BaseURL    string // default https://api.openai.com/v1
	Model      string
	APIKey     string // default: OPENAI_API_KEY env var
	HTTPClient *http.Client
}

// New builds a client for the given endpoint and model. Empty baseURL
// selects the OpenAI default.
func New(baseURL, model string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Ask forwards the question plus a serialized snapshot of both collections
// and returns the model's answer text.
func (c *Client) Ask(ctx context.Context, question string, snap roster.Snapshot) (string, error) {
	collaborators, err := json.MarshalIndent(snap.Collaborators, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize collaborators: %w", err)
	}
	records, err := json.MarshalIndent(snap.Records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize records: %w", err)
	}

	userContent := fmt.Sprintf(
		"CONTEXTO DE DATOS:\n\n### COLABORADORES ###\n%s\n\n### REGISTROS ###\n%s\n\nPREGUNTA DEL USUARIO:\n%s",
		collaborators, records, question)

	temperature := 0.2
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := c.apiKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, truncate(payload, 200))
	}

	return parseAnswer(payload)
}

func (c *Client) buildURL() string {
	base := c.BaseURL
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	base = strings.TrimSuffix(base, "/")
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	return base + "/chat/completions"
}

func (c *Client) apiKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

// =============================================================================
// WIRE FORMAT
// =============================================================================

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// parseAnswer extracts the answer text from a chat-completions response.
func parseAnswer(payload []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("parse model response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model response carried no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
