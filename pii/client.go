package pii

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	recognizePIIPath        = "/text/analytics/v3.1/entities/recognition/pii"
	subscriptionKeyHeader   = "Ocp-Apim-Subscription-Key"
	clientRequestIDHeader   = "x-ms-client-request-id"
	defaultMaxResponseBytes = 4 * 1024 * 1024
)

// ErrUnauthorized is returned when the service rejects the configured key.
var ErrUnauthorized = errors.New("pii: language service rejected credentials")

// Client calls the Azure AI Language PII recognition endpoint.
type Client struct {
	endpoint         string
	apiKey           string
	language         string
	client           *http.Client
	maxResponseBytes int64
}

// NewClient creates a client for the given resource endpoint and key.
// A nil httpClient uses http.DefaultClient; deadlines come from the caller's context.
func NewClient(endpoint, apiKey, language string, httpClient *http.Client) *Client {
	if language == "" {
		language = "en"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:         strings.TrimSuffix(endpoint, "/"),
		apiKey:           apiKey,
		language:         language,
		client:           httpClient,
		maxResponseBytes: defaultMaxResponseBytes,
	}
}

type recognizeRequest struct {
	Documents []requestDocument `json:"documents"`
}

type requestDocument struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type recognizeResponse struct {
	Documents    []responseDocument `json:"documents"`
	Errors       []documentError    `json:"errors"`
	ModelVersion string             `json:"modelVersion"`
}

type responseDocument struct {
	ID       string           `json:"id"`
	Entities []responseEntity `json:"entities"`
}

type responseEntity struct {
	Text            string  `json:"text"`
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory"`
	Offset          int     `json:"offset"`
	Length          int     `json:"length"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

type documentError struct {
	ID    string    `json:"id"`
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       string     `json:"code"`
	Message    string     `json:"message"`
	InnerError *errorBody `json:"innererror,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Detect analyzes one document.
func (c *Client) Detect(ctx context.Context, text string) (DocumentResult, error) {
	results, err := c.DetectBatch(ctx, []string{text})
	if err != nil {
		return DocumentResult{}, err
	}
	return results[0], nil
}

// DetectBatch analyzes several documents in one call and returns one result per
// input, in input order. Transport, auth and decode failures fail the whole call.
func (c *Client) DetectBatch(ctx context.Context, texts []string) ([]DocumentResult, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := recognizeRequest{Documents: make([]requestDocument, len(texts))}
	for i, t := range texts {
		reqBody.Documents[i] = requestDocument{ID: strconv.Itoa(i + 1), Language: c.language, Text: t}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("pii: encode request: %w", err)
	}

	url := c.endpoint + recognizePIIPath + "?stringIndexType=UnicodeCodePoint"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("pii: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyHeader, c.apiKey)
	req.Header.Set(clientRequestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pii: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("pii: read response: %w", err)
	}
	if int64(len(body)) > c.maxResponseBytes {
		return nil, fmt.Errorf("pii: response exceeds %d bytes", c.maxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("pii: decode response: %w", err)
	}
	log.Printf("pii: analyzed %d document(s), model %s, request %s", len(texts), parsed.ModelVersion, requestID)

	return collectResults(len(texts), parsed)
}

func statusError(status int, body []byte) error {
	var er errorResponse
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &er) == nil && er.Error.Message != "" {
		msg = er.Error.Message
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w (status %d): %s", ErrUnauthorized, status, msg)
	}
	return fmt.Errorf("pii: service returned status %d: %s", status, msg)
}

func collectResults(n int, parsed recognizeResponse) ([]DocumentResult, error) {
	results := make([]DocumentResult, n)
	seen := make([]bool, n)

	index := func(id string) (int, error) {
		i, err := strconv.Atoi(id)
		if err != nil || i < 1 || i > n {
			return 0, fmt.Errorf("pii: response references unknown document id %q", id)
		}
		return i - 1, nil
	}

	for _, doc := range parsed.Documents {
		i, err := index(doc.ID)
		if err != nil {
			return nil, err
		}
		entities := make(Entities, 0, len(doc.Entities))
		for _, e := range doc.Entities {
			entities = append(entities, Entity{
				Text:            e.Text,
				Category:        Category(e.Category),
				Subcategory:     e.Subcategory,
				ConfidenceScore: e.ConfidenceScore,
				Offset:          e.Offset,
				Length:          e.Length,
			})
		}
		results[i] = DocumentResult{Entities: entities}
		seen[i] = true
	}

	for _, de := range parsed.Errors {
		i, err := index(de.ID)
		if err != nil {
			return nil, err
		}
		body := de.Error
		if body.InnerError != nil && body.InnerError.Message != "" {
			body = *body.InnerError
		}
		results[i] = DocumentResult{Err: &DocumentError{Code: body.Code, Message: body.Message}}
		seen[i] = true
	}

	for i, ok := range seen {
		if !ok {
			results[i] = DocumentResult{Err: &DocumentError{Code: "MissingResult", Message: "service returned no result for document"}}
		}
	}
	return results, nil
}
