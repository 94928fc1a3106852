package sheets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emedina/horas/internal/model"
	"github.com/emedina/horas/internal/sheets"
)

func testRecord() model.Record {
	return model.Record{
		ID:              "rec-1",
		StartDate:       "2024-01-01",
		EndDate:         "2024-01-01",
		StartTime:       "09:00",
		EndTime:         "17:30",
		Name:            "Carlos",
		Description:     "Avería en la sala",
		Observations:    "",
		CalculatedHours: 8.5,
		Status:          model.StatusPending,
		Timestamp:       "2024-03-05T08:07:00Z",
	}
}

// capture records the last request a test server received.
type capture struct {
	contentType string
	body        map[string]any
}

func scriptServer(t *testing.T, status int, response string, cap *capture) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading request body: %v", err)
		}
		cap.contentType = r.Header.Get("Content-Type")
		if err := json.Unmarshal(data, &cap.body); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestSubmitCreateConfirmed(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, `{"result":"success"}`, &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	if err := client.SubmitCreate(context.Background(), testRecord()); err != nil {
		t.Fatalf("SubmitCreate: %v", err)
	}

	if cap.contentType != "text/plain;charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/plain;charset=utf-8", cap.contentType)
	}
	if cap.body["action"] != "add" {
		t.Errorf("action = %v, want add", cap.body["action"])
	}

	data, ok := cap.body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data field missing or not an object: %v", cap.body["data"])
	}
	want := map[string]any{
		"ID":            "rec-1",
		"F. Inicio":     "2024-01-01",
		"F. Fin":        "2024-01-01",
		"H. Inicio":     "09:00",
		"H. Fin":        "17:30",
		"Actuación":     "Avería en la sala",
		"Nombre":        "Carlos",
		"Observaciones": "",
		"F. Registro":   "5-3-2024 08:07",
	}
	for k, v := range want {
		if data[k] != v {
			t.Errorf("data[%q] = %v, want %v", k, data[k], v)
		}
	}
	if h, _ := data["Horas"].(float64); h != 8.5 {
		t.Errorf("data[Horas] = %v, want 8.5", data["Horas"])
	}
}

func TestSubmitCreateFireAndForgetFlattensPayload(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, "ignored", &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeFireAndForget)
	if err := client.SubmitCreate(context.Background(), testRecord()); err != nil {
		t.Fatalf("SubmitCreate: %v", err)
	}

	if cap.body["action"] != "add" {
		t.Errorf("action = %v, want add", cap.body["action"])
	}
	if cap.body["ID"] != "rec-1" {
		t.Errorf("ID = %v, want rec-1 at the top level", cap.body["ID"])
	}
	if _, nested := cap.body["data"]; nested {
		t.Error("fire-and-forget payload must not nest fields under data")
	}
}

func TestSubmitCreateResultError(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, `{"result":"error","message":"quota exceeded"}`, &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	err := client.SubmitCreate(context.Background(), testRecord())
	if err == nil {
		t.Fatal("expected error for result:error envelope")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error %q does not carry the script message", err)
	}
}

func TestSubmitCreateResultCaseInsensitive(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, `{"result":"SUCCESS"}`, &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	if err := client.SubmitCreate(context.Background(), testRecord()); err != nil {
		t.Fatalf("SubmitCreate with uppercase result: %v", err)
	}
}

func TestSubmitCreateHTTPError(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusInternalServerError, "boom", &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	err := client.SubmitCreate(context.Background(), testRecord())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q does not carry the status code", err)
	}
}

func TestSubmitCreateMalformedBody(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, "<html>redirected</html>", &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	if err := client.SubmitCreate(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error for non-JSON response body")
	}
}

func TestSubmitCreateFireAndForgetIgnoresResponse(t *testing.T) {
	var cap capture
	// Even a 500 with garbage is fine once the request itself went through.
	srv := scriptServer(t, http.StatusInternalServerError, "<garbage>", &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeFireAndForget)
	if err := client.SubmitCreate(context.Background(), testRecord()); err != nil {
		t.Fatalf("SubmitCreate fire-and-forget: %v", err)
	}
}

func TestSubmitCreateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	for _, mode := range []sheets.Mode{sheets.ModeConfirmed, sheets.ModeFireAndForget} {
		client := sheets.NewClient(srv.URL, mode)
		if err := client.SubmitCreate(context.Background(), testRecord()); err == nil {
			t.Errorf("mode %s: expected transport error", mode)
		}
	}
}

func TestSubmitCreateInvalidTimestamp(t *testing.T) {
	rec := testRecord()
	rec.Timestamp = "not-a-timestamp"
	client := sheets.NewClient("http://127.0.0.1:0", sheets.ModeConfirmed)
	if err := client.SubmitCreate(context.Background(), rec); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestSubmitDeleteConfirmed(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, `{"result":"success"}`, &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeConfirmed)
	if err := client.SubmitDelete(context.Background(), "rec-1"); err != nil {
		t.Fatalf("SubmitDelete: %v", err)
	}

	if cap.body["action"] != "delete" {
		t.Errorf("action = %v, want delete", cap.body["action"])
	}
	data, ok := cap.body["data"].(map[string]any)
	if !ok || data["ID"] != "rec-1" {
		t.Errorf("data = %v, want {ID: rec-1}", cap.body["data"])
	}
}

func TestSubmitDeleteFireAndForget(t *testing.T) {
	var cap capture
	srv := scriptServer(t, http.StatusOK, "ignored", &cap)
	defer srv.Close()

	client := sheets.NewClient(srv.URL, sheets.ModeFireAndForget)
	if err := client.SubmitDelete(context.Background(), "rec-1"); err != nil {
		t.Fatalf("SubmitDelete: %v", err)
	}

	if cap.body["action"] != "delete" {
		t.Errorf("action = %v, want delete", cap.body["action"])
	}
	if cap.body["id"] != "rec-1" {
		t.Errorf("id = %v, want rec-1 at the top level", cap.body["id"])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  sheets.Mode
	}{
		{"confirmed", sheets.ModeConfirmed},
		{"fire-and-forget", sheets.ModeFireAndForget},
		{"Fire-And-Forget", sheets.ModeFireAndForget},
		{"", sheets.ModeConfirmed},
		{"bogus", sheets.ModeConfirmed},
	}
	for _, tt := range tests {
		if got := sheets.ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
