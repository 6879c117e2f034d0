package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/freighthub/internal/app/system/auth"
)

// VendorUser returns a session user on the vendor side of the given
// company.
func VendorUser(companyID, scope string) *auth.SessionUser {
	return &auth.SessionUser{
		ID:          "u-" + companyID,
		Name:        companyID + "@test.com",
		FullName:    "Vendor User " + companyID,
		CompanyID:   companyID,
		CompanyName: "Vendor " + companyID,
		Scope:       scope,
		Kind:        "vendor",
		Role:        "admin",
	}
}

// CustomerUser returns a session user on the customer side of the given
// company.
func CustomerUser(companyID, scope string) *auth.SessionUser {
	return &auth.SessionUser{
		ID:          "u-" + companyID,
		Name:        companyID + "@test.com",
		FullName:    "Customer User " + companyID,
		CompanyID:   companyID,
		CompanyName: "Customer " + companyID,
		Scope:       scope,
		Kind:        "customer",
		Role:        "admin",
	}
}

// WithUser adds the session user to the request context, bypassing cookie
// decoding.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, u)
}

// NewJSONRequest creates a request with body marshaled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	r := httptest.NewRequest(method, target, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	return r
}
