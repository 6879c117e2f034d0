package contracts_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/freighthub/internal/app/features/contracts"
	catalogstore "github.com/dalemusser/freighthub/internal/app/store/catalog"
	customerrepostore "github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	directorystore "github.com/dalemusser/freighthub/internal/app/store/directory"
	mailboxstore "github.com/dalemusser/freighthub/internal/app/store/mailbox"
	pincodestore "github.com/dalemusser/freighthub/internal/app/store/pincodes"
	quotationstore "github.com/dalemusser/freighthub/internal/app/store/quotations"
	vendorrepostore "github.com/dalemusser/freighthub/internal/app/store/vendorrepo"
	"github.com/dalemusser/freighthub/internal/app/system/approval"
	"github.com/dalemusser/freighthub/internal/app/system/assignment"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/app/system/serviceability"
	"github.com/dalemusser/freighthub/internal/app/system/steplog"
	"github.com/dalemusser/freighthub/internal/domain/models"
	"github.com/dalemusser/freighthub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, db *mongo.Database) (http.Handler, *testutil.Fixtures) {
	t.Helper()

	directory := directorystore.New(db)
	catalog := catalogstore.New(db)
	repo := customerrepostore.New(db)
	notifier := notify.NewDispatcher(mailboxstore.New(db), nil, "NTF", zap.NewNop())
	steps := steplog.New(zap.NewNop())

	assigner := assignment.NewCoordinator(directory, catalog, repo, quotationstore.New(db), notifier, steps)
	approver := approval.NewCoordinator(directory, catalog, repo, vendorrepostore.New(db),
		approval.NewGuard(repo), serviceability.New(pincodestore.New(db)), notifier, steps)

	h := contracts.NewHandler(assigner, approver, repo, zap.NewNop())
	return contracts.Routes(h), testutil.NewFixtures(t, db)
}

func assignBody(contractID, customerID string) map[string]any {
	return map[string]any{
		"assignType":   models.AssignTypeDirect,
		"contractId":   contractID,
		"contractName": "FTL " + contractID,
		"customerId":   customerID,
		"billing": map[string]any{
			"paymentType":  "postpaid",
			"creditAmount": 50000,
			"scheduleType": models.ScheduleDate,
			"billingDate":  "2026-09-15",
		},
	}
}

func TestAssignEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, fixtures := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vendor := fixtures.CreateCompany(ctx, "vend1", "vendco", "Vendor Co", models.KindVendor)
	fixtures.CreateCompany(ctx, "cust1", "custco", "Customer Co", models.KindCustomer)
	fixtures.CreateContract(ctx, "vendco", "C1", vendor)
	fixtures.CreateCustomerRepo(ctx, "custco", "cust1")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "cust1"))
	req = testutil.WithUser(req, testutil.VendorUser("vend1", "vendco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res assignment.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ContractID != "C1" || res.CustomerID != "cust1" || res.Status != "pending" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestAssignEndpoint_NotFoundBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, _ := newRouter(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "ghost"))
	req = testutil.WithUser(req, testutil.VendorUser("vend1", "vendco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Errorf("error code missing from body: %s", rec.Body.String())
	}
}

func TestAssignEndpoint_InvalidBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, _ := newRouter(t, db)

	req := httptest.NewRequest(http.MethodPost, "/assign", strings.NewReader("{not json"))
	req = testutil.WithUser(req, testutil.VendorUser("vend1", "vendco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestAssignEndpoint_RequiresVendor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, _ := newRouter(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "cust1"))
	req = testutil.WithUser(req, testutil.CustomerUser("cust1", "custco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("customers must not assign: got %d", rec.Code)
	}
}

func TestAssignEndpoint_RequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, _ := newRouter(t, db)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "cust1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous callers get 401, got %d", rec.Code)
	}
}

func TestApproveEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, fixtures := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vendor := fixtures.CreateCompany(ctx, "vend1", "vendco", "Vendor Co", models.KindVendor)
	fixtures.CreateCompany(ctx, "cust1", "custco", "Customer Co", models.KindCustomer)
	fixtures.CreateContract(ctx, "vendco", "C1", vendor)
	fixtures.CreateCustomerRepo(ctx, "custco", "cust1")

	assignReq := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "cust1"))
	assignReq = testutil.WithUser(assignReq, testutil.VendorUser("vend1", "vendco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, assignReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}

	body := map[string]any{"contractId": "C1", "vendorId": "vend1", "customerResponse": "approved"}
	approveReq := testutil.NewJSONRequest(t, http.MethodPost, "/approve", body)
	approveReq = testutil.WithUser(approveReq, testutil.CustomerUser("cust1", "custco"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, approveReq)

	if rec.Code != http.StatusOK {
		t.Fatalf("approve status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res approval.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Approved || res.Processed != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	// Replays surface the duplicate-action guard as a conflict.
	replay := testutil.NewJSONRequest(t, http.MethodPost, "/approve", body)
	replay = testutil.WithUser(replay, testutil.CustomerUser("cust1", "custco"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, replay)
	if rec.Code != http.StatusConflict {
		t.Errorf("replay status: got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already_processed") {
		t.Errorf("error code missing from body: %s", rec.Body.String())
	}
}

func TestPendingEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, fixtures := newRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vendor := fixtures.CreateCompany(ctx, "vend1", "vendco", "Vendor Co", models.KindVendor)
	fixtures.CreateCompany(ctx, "cust1", "custco", "Customer Co", models.KindCustomer)
	fixtures.CreateContract(ctx, "vendco", "C1", vendor)
	fixtures.CreateCustomerRepo(ctx, "custco", "cust1")

	assignReq := testutil.NewJSONRequest(t, http.MethodPost, "/assign", assignBody("C1", "cust1"))
	assignReq = testutil.WithUser(assignReq, testutil.VendorUser("vend1", "vendco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, assignReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("assign failed: %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/pending", nil)
	req = testutil.WithUser(req, testutil.CustomerUser("cust1", "custco"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Pending []models.ProductEntry `json:"pending"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Pending) != 1 || res.Pending[0].PID != "C1" {
		t.Errorf("unexpected pending list: %+v", res.Pending)
	}
}

func TestPendingEndpoint_EmptyList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router, _ := newRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/pending", nil)
	req = testutil.WithUser(req, testutil.CustomerUser("cust1", "custco"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "\"pending\":[]") {
		t.Errorf("empty list must encode as [], got %s", rec.Body.String())
	}
}
