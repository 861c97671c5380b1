package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verahealth/coach-backend/internal/observability"
	"github.com/verahealth/coach-backend/internal/platform/httpx"
	"github.com/verahealth/coach-backend/internal/platform/logger"
)

// Client is the AI text-generation capability the engine depends on. It is
// always injected, never reached through package state, so tests can swap in
// a fake that always fails or always succeeds.
type Client interface {
	// Structured outputs (json_schema)
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)

	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int

	temperature *float64
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeoutSec := 60
	if v := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 2
	if v := strings.TrimSpace(os.Getenv("OPENAI_MAX_RETRIES")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	var tempPtr *float64
	temp := 0.2
	if v := strings.TrimSpace(os.Getenv("OPENAI_TEMPERATURE")); v != "" {
		switch strings.ToLower(v) {
		case "off", "none", "false":
			temp = -1
		default:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				temp = f
			}
		}
	}
	if temp >= 0 {
		tempPtr = &temp
	}

	return &client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries:  maxRetries,
		temperature: tempPtr,
	}, nil
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	backoff := 1 * time.Second
	start := time.Now()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, method, path, body)
		if err == nil {
			if metrics := observability.Current(); metrics != nil {
				inputTokens, outputTokens := extractUsageFromRaw(raw)
				metrics.ObserveLLMRequest(c.model, path, statusFromResp(resp), time.Since(start), inputTokens, outputTokens)
			}
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			if metrics := observability.Current(); metrics != nil {
				metrics.ObserveLLMRequest(c.model, path, statusFromRespErr(resp, err), time.Since(start), 0, 0)
			}
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

// -------------------- Responses API --------------------

type responsesRequest struct {
	Model string `json:"model"`

	Input []struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	} `json:"input"`

	Text struct {
		Format map[string]any `json:"format,omitempty"`
	} `json:"text,omitempty"`

	Temperature *float64 `json:"temperature,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Role    string `json:"role,omitempty"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
	Refusal string `json:"refusal,omitempty"`
}

func extractOutputText(resp responsesResponse) string {
	var out strings.Builder
	for _, item := range resp.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && c.Text != "" {
					out.WriteString(c.Text)
				}
			}
		}
	}
	return out.String()
}

func (c *client) newRequest(system, user string) responsesRequest {
	req := responsesRequest{
		Model: c.model,
		Input: []struct {
			Role    string `json:"role"`
			Content any    `json:"content"`
		}{
			{Role: "system", Content: strings.TrimSpace(system)},
			{Role: "user", Content: user},
		},
	}
	req.Temperature = c.temperature
	return req
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if schemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if schema == nil {
		return nil, errors.New("schema required")
	}

	req := c.newRequest(system, user)
	req.Text.Format = map[string]any{
		"type":   "json_schema",
		"name":   schemaName,
		"schema": schema,
		"strict": true,
	}

	var resp responsesResponse
	if err := c.do(ctx, "POST", "/v1/responses", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Refusal != "" {
		return nil, fmt.Errorf("model refused: %s", resp.Refusal)
	}

	jsonText := extractOutputText(resp)
	if strings.TrimSpace(jsonText) == "" {
		return nil, fmt.Errorf("no output_text found in response")
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(jsonText), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w; text=%s", err, jsonText)
	}
	return obj, nil
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	req := c.newRequest(system, user)

	var resp responsesResponse
	if err := c.do(ctx, "POST", "/v1/responses", &req, &resp); err != nil {
		return "", err
	}
	if resp.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", resp.Refusal)
	}

	text := extractOutputText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no output_text found in response")
	}
	return text, nil
}

func extractUsageFromRaw(raw []byte) (int, int) {
	if len(raw) == 0 {
		return 0, 0
	}
	var payload struct {
		Usage struct {
			InputTokens      int `json:"input_tokens"`
			OutputTokens     int `json:"output_tokens"`
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, 0
	}
	in, out := payload.Usage.InputTokens, payload.Usage.OutputTokens
	if in == 0 && out == 0 {
		in, out = payload.Usage.PromptTokens, payload.Usage.CompletionTokens
	}
	return in, out
}

func statusFromResp(resp *http.Response) string {
	if resp == nil {
		return "unknown"
	}
	return strconv.Itoa(resp.StatusCode)
}

func statusFromRespErr(resp *http.Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	var httpErr *openAIHTTPError
	if err != nil && errors.As(err, &httpErr) {
		return strconv.Itoa(httpErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}

// EstimateTokens approximates token usage for texts that never reach the API
// (used for log context only, never billing).
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	runes := []rune(text)
	return int(math.Ceil(float64(len(runes)) / 4.0))
}
