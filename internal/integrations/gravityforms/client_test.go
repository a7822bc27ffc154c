package gravityforms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	leadsvc "quotewidget_backend/internal/leads/service"
	"quotewidget_backend/platform/apperr"
	"quotewidget_backend/platform/logger"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetGravityFormsBaseURL() string    { return c.baseURL }
func (c testConfig) GetGravityFormsFormID() string     { return "1" }
func (c testConfig) GetGravityFormsPublicKey() string  { return "pub" }
func (c testConfig) GetGravityFormsPrivateKey() string { return "priv" }
func (c testConfig) IsGravityFormsEnabled() bool       { return true }

func testInput() leadsvc.ForwardInput {
	return leadsvc.ForwardInput{
		WidgetKey: "abc123",
		Data:      map[string]interface{}{"name": "Jane Doe"},
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(testConfig{baseURL: baseURL}, logger.New("development"))
}

func TestForward_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "pub" {
			t.Fatalf("expected api_key query param, got %q", query.Get("api_key"))
		}
		if query.Get("signature") == "" || query.Get("expires") == "" {
			t.Fatal("expected signature and expires query params")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"response":{"is_valid":true,"entry_id":42}}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Forward(context.Background(), testInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	decoded := result.(map[string]interface{})
	response := decoded["response"].(map[string]interface{})
	if response["entry_id"] != 42.0 {
		t.Fatalf("expected decoded upstream body, got %v", decoded)
	}
}

func TestForward_SuccessShapedValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"response":{"is_valid":false,"validation_messages":{"2":"required"}}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forward(context.Background(), testInput())
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected external failure on is_valid=false, got %v", err)
	}
}

func TestForward_SuccessShapedEmbeddedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":401,"response":"Not authorized"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forward(context.Background(), testInput())
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected external failure on embedded status 401, got %v", err)
	}
}

func TestForward_AbsentIsValidCountsAsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"response":{"entry_id":7}}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Forward(context.Background(), testInput()); err != nil {
		t.Fatalf("expected success when is_valid is absent, got %v", err)
	}
}

func TestForward_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forward(context.Background(), testInput())
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected external failure on 500, got %v", err)
	}
}
