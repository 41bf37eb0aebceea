package athom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/xid"
)

type APIError struct {
	CorrelationID string
	StatusCode    int
	Message       string
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error: '%s' (status %d, correlation: %s)", e.Message, e.StatusCode, e.CorrelationID)
}

func (c *Client) get(ctx context.Context, url string, result any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, url string, payload, result any) (string, error) {
	var body io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshaling payload: %w", err)
		}
		body = bytes.NewBuffer(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) (string, error) {
	// each request carries a client-generated correlation ID so failures
	// can be matched against cloud-side logs
	correlation := xid.New().String()
	req.Header.Set("X-Correlation-ID", correlation)

	if token := c.current.Token; token != nil && token.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return correlation, fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return correlation, parseErrorResponse(resp, correlation)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return correlation, fmt.Errorf("decoding response: %w", err)
		}
	}

	return correlation, nil
}

func parseErrorResponse(resp *http.Response, correlation string) error {
	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d and unreadable body: %w", resp.StatusCode, err)
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		message := errResp.Error
		if errResp.ErrorDescription != "" {
			message += ": " + errResp.ErrorDescription
		}
		return APIError{
			CorrelationID: correlation,
			StatusCode:    resp.StatusCode,
			Message:       message,
		}
	}
	return APIError{
		CorrelationID: correlation,
		StatusCode:    resp.StatusCode,
		Message:       string(body),
	}
}
