package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/freighthub/internal/app/features/health"
	"github.com/dalemusser/freighthub/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_OK(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		Push     string `json:"push"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "ok" || res.Database != "connected" {
		t.Errorf("unexpected response: %+v", res)
	}
	if res.Push != "" {
		t.Errorf("push must be omitted when not configured, got %q", res.Push)
	}
}
