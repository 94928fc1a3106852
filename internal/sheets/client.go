// Package sheets talks to the Google Apps Script web app backing the shared
// spreadsheet. The script accepts JSON commands in a text/plain POST body
// (text/plain keeps browser clients of the same script free of a CORS
// preflight; the wire contract is preserved here).
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/timecalc"
)

// contentType is the body content type expected by the Apps Script endpoint.
const contentType = "text/plain;charset=utf-8"

// Mode selects how the client treats the script's response.
type Mode string

const (
	// ModeConfirmed parses the script's JSON envelope and reports any
	// non-success result as an error.
	ModeConfirmed Mode = "confirmed"
	// ModeFireAndForget sends the request without reading a structured
	// response; only transport-level failure is observable.
	ModeFireAndForget Mode = "fire-and-forget"
)

// ParseMode maps a config string to a Mode, defaulting to ModeConfirmed.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeFireAndForget)) {
		return ModeFireAndForget
	}
	return ModeConfirmed
}

// Client issues add/delete commands against the script endpoint.
type Client struct {
	url        string
	mode       Mode
	httpClient *http.Client
}

// NewClient creates a Client for the given script URL.
func NewClient(url string, mode Mode) *Client {
	return &Client{
		url:        url,
		mode:       mode,
		httpClient: http.DefaultClient,
	}
}

// envelope is the script's response wrapper.
type envelope struct {
	Result  string          `json:"result"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// createFields maps a record onto the sheet's column names.
func createFields(rec model.Record) (map[string]any, error) {
	created, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid record timestamp %q: %w", rec.Timestamp, err)
	}
	return map[string]any{
		"ID":            rec.ID,
		"F. Inicio":     rec.StartDate,
		"F. Fin":        rec.EndDate,
		"H. Inicio":     rec.StartTime,
		"H. Fin":        rec.EndTime,
		"Actuación":     rec.Description,
		"Horas":         rec.CalculatedHours,
		"Nombre":        rec.Name,
		"Observaciones": rec.Observations,
		"F. Registro":   timecalc.FormatRegistration(created),
	}, nil
}

// SubmitCreate adds a record row to the sheet.
func (c *Client) SubmitCreate(ctx context.Context, rec model.Record) error {
	fields, err := createFields(rec)
	if err != nil {
		return err
	}

	var payload map[string]any
	if c.mode == ModeFireAndForget {
		// Flat payload with the action tag merged in.
		payload = fields
		payload["action"] = "add"
	} else {
		payload = map[string]any{"action": "add", "data": fields}
	}
	return c.post(ctx, payload)
}

// SubmitDelete removes the row with the given record ID from the sheet.
func (c *Client) SubmitDelete(ctx context.Context, id string) error {
	var payload map[string]any
	if c.mode == ModeFireAndForget {
		payload = map[string]any{"action": "delete", "id": id}
	} else {
		payload = map[string]any{"action": "delete", "data": map[string]any{"ID": id}}
	}
	return c.post(ctx, payload)
}

// post sends one command and, in confirmed mode, validates the response
// envelope. There is no retry and no timeout beyond the transport default.
func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("script request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.mode == ModeFireAndForget {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("script error %d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(respBody)))
	}

	// The script sometimes answers through a redirect and loses its JSON
	// content type, so decode the text body regardless of headers.
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("unexpected response from the script: %s", strings.TrimSpace(string(respBody)))
	}

	if !strings.EqualFold(env.Result, "success") {
		if env.Message != "" {
			return fmt.Errorf("script rejected the request: %s", env.Message)
		}
		return fmt.Errorf("script rejected the request (result %q)", env.Result)
	}
	return nil
}
