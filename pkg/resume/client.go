package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go-interview-backend/internal/domain"
)

// Client proxies resume files and questions to the external
// document-processing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Document processing chews through large files; allow more
			// headroom than a plain JSON call would need.
			Timeout: 120 * time.Second,
		},
	}
}

// UploadAndProcess forwards the uploaded files as multipart form data to the
// processor's /upload-and-process endpoint and relays the raw JSON result.
func (c *Client) UploadAndProcess(ctx context.Context, files []*multipart.FileHeader) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
		}
		part, err := writer.CreateFormFile("files", fh.Filename)
		if err != nil {
			src.Close()
			return nil, err
		}
		if _, err := io.Copy(part, src); err != nil {
			src.Close()
			return nil, fmt.Errorf("failed to read uploaded file %q: %w", fh.Filename, err)
		}
		src.Close()
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-and-process", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resume service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("resume service returned status %d", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}

// Ask relays a free-form question to the processor's /ask endpoint.
func (c *Client) Ask(ctx context.Context, question string) (map[string]any, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resume service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("resume service returned status %d", resp.StatusCode)
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse resume service response: %w", err)
	}
	return result, nil
}

var _ domain.ResumeProcessor = (*Client)(nil)
