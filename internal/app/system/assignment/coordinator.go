// internal/app/system/assignment/coordinator.go
package assignment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/app/store/catalog"
	"github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	"github.com/dalemusser/freighthub/internal/app/store/directory"
	"github.com/dalemusser/freighthub/internal/app/store/quotations"
	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/app/system/steplog"
	"github.com/dalemusser/freighthub/internal/apperror"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// BillingTerms is the vendor's proposed billing for the assignment. The
// schedule fields are conditional on ScheduleType.
type BillingTerms struct {
	PaymentType          string  `json:"paymentType"`
	PaymentTime          string  `json:"paymentTime"`
	PrepaidPercent       float64 `json:"prepaidAmount"`
	PrepaidPercentOn     string  `json:"prepaidPercentOn"`
	CreditAmount         float64 `json:"creditAmount"`
	ScheduleType         string  `json:"scheduleType"`
	BillingDate          string  `json:"billingDate"`
	BillingRecursiveDays int     `json:"billingRecursive"`
	BillingInterestValue float64 `json:"billingInterestValue"`
	BillingInterestOn    string  `json:"billingInterestOn"`
	BillingInterestDays  int     `json:"billingInterestDays"`
}

// Request is one contract assignment. CustomerID is required for direct
// assignments, QuotationID for quotation assignments.
type Request struct {
	AssignType   string       `json:"assignType"`
	ContractID   string       `json:"contractId"`
	ContractName string       `json:"contractName"`
	CustomerID   string       `json:"customerId"`
	QuotationID  string       `json:"quotationId"`
	Terms        BillingTerms `json:"billing"`
}

// Validate checks the request shape before any write happens.
func (r Request) Validate() error {
	switch r.AssignType {
	case models.AssignTypeDirect:
		if r.CustomerID == "" {
			return apperror.Validationf("customerId is required for direct assignment")
		}
	case models.AssignTypeQuotation:
		if r.QuotationID == "" {
			return apperror.Validationf("quotationId is required for quotation assignment")
		}
	default:
		return apperror.Validationf("assignType must be %q or %q", models.AssignTypeDirect, models.AssignTypeQuotation)
	}
	if r.ContractID == "" {
		return apperror.Validationf("contractId is required")
	}
	if r.ContractName == "" {
		return apperror.Validationf("contractName is required")
	}
	if r.Terms.PaymentType == "" {
		return apperror.Validationf("billing.paymentType is required")
	}
	switch strings.ToLower(r.Terms.ScheduleType) {
	case models.ScheduleDate:
		if r.Terms.BillingDate == "" {
			return apperror.Validationf("billing.billingDate is required for date schedule")
		}
	case models.ScheduleRecursive:
		if r.Terms.BillingRecursiveDays <= 0 {
			return apperror.Validationf("billing.billingRecursive must be positive for recursive schedule")
		}
	default:
		return apperror.Validationf("billing.scheduleType must be %q or %q", models.ScheduleDate, models.ScheduleRecursive)
	}
	return nil
}

// Result reports where the assignment landed.
type Result struct {
	ContractID string `json:"contractId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
}

// Coordinator runs the assignment choreography across the vendor catalog,
// the quotations collection, and the customer repo. The writes are not
// transactional; each is logged so a failed run can be compensated by hand.
type Coordinator struct {
	directory  *directorystore.Store
	catalog    *catalogstore.Store
	repo       *customerrepostore.Store
	quotations *quotationstore.Store
	notifier   *notify.Dispatcher
	steps      *steplog.Logger
}

func NewCoordinator(
	directory *directorystore.Store,
	catalog *catalogstore.Store,
	repo *customerrepostore.Store,
	quotations *quotationstore.Store,
	notifier *notify.Dispatcher,
	steps *steplog.Logger,
) *Coordinator {
	return &Coordinator{
		directory:  directory,
		catalog:    catalog,
		repo:       repo,
		quotations: quotations,
		notifier:   notifier,
		steps:      steps,
	}
}

// customerIdentity is the resolved target of the assignment.
type customerIdentity struct {
	ID    string
	Name  string
	Scope string
}

// Assign dispatches on the assignment type. actor is the signed-in vendor
// user; actor.Scope names the vendor's catalog collection.
func (c *Coordinator) Assign(ctx context.Context, actor *auth.SessionUser, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	ctx, _ = steplog.NewOperation(ctx)

	switch req.AssignType {
	case models.AssignTypeQuotation:
		return c.assignAgainstQuotation(ctx, actor, req)
	default:
		return c.assignDirect(ctx, actor, req)
	}
}

func (c *Coordinator) assignDirect(ctx context.Context, actor *auth.SessionUser, req Request) (Result, error) {
	company, err := c.directory.ByCompanyID(ctx, req.CustomerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperror.NotFoundf("customer %s not found", req.CustomerID)
		}
		return Result{}, apperror.Wrap(err, "resolve customer")
	}
	if company.Kind != models.KindCustomer {
		return Result{}, apperror.Validationf("company %s is not a customer", req.CustomerID)
	}

	target := customerIdentity{ID: company.CompanyID, Name: company.Name, Scope: company.Scope}
	billing := buildBilling(req.Terms, actor.CompanyID, target, models.AssignTypeDirect)
	return c.applyAssignment(ctx, actor, req, target, billing)
}

func (c *Coordinator) assignAgainstQuotation(ctx context.Context, actor *auth.SessionUser, req Request) (Result, error) {
	q, err := c.quotations.RespondAndAssign(ctx, req.QuotationID, actor.CompanyID, req.ContractID, req.ContractName, time.Now().UTC())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperror.NotFoundf("quotation %s not found for vendor %s", req.QuotationID, actor.CompanyID)
		}
		return Result{}, apperror.Wrap(err, "respond to quotation")
	}
	c.steps.Step(ctx, "assign", "quotation responded",
		zap.String("quotation_id", req.QuotationID), zap.String("contract_id", req.ContractID))

	target := customerIdentity{ID: q.CustomerID, Name: q.CompanyName, Scope: q.CompanyID}
	billing := buildBilling(req.Terms, actor.CompanyID, target, models.AssignTypeQuotation)

	snap := models.QuotationSnapshot{
		ID:          req.QuotationID,
		CustomerID:  target.ID,
		CompanyID:   target.Scope,
		CompanyName: target.Name,
		Billing:     billing,
	}
	if err := c.catalog.SetQuotationSnapshot(ctx, actor.Scope, req.ContractID, snap); err != nil {
		c.steps.Failed(ctx, "assign", "write quotation snapshot", err, zap.String("contract_id", req.ContractID))
		return Result{}, apperror.Wrap(err, "write quotation snapshot")
	}
	c.steps.Step(ctx, "assign", "quotation snapshot written", zap.String("contract_id", req.ContractID))

	return c.applyAssignment(ctx, actor, req, target, billing)
}

// applyAssignment is the shared tail: replace the customer link on the
// contract, replace the customer's pending entry, and drop any approved
// entry from an earlier assignment of the same contract.
func (c *Coordinator) applyAssignment(ctx context.Context, actor *auth.SessionUser, req Request, target customerIdentity, billing models.Billing) (Result, error) {
	link := models.CustomerLink{
		CustomerID:   target.ID,
		CustomerName: target.Name,
		CustomerCID:  target.Scope,
		Approved:     false,
		Billing:      billing,
	}

	if err := c.catalog.PullCustomer(ctx, actor.Scope, req.ContractID, target.ID); err != nil {
		c.steps.Failed(ctx, "assign", "pull customer link", err, zap.String("contract_id", req.ContractID))
		return Result{}, apperror.Wrap(err, "remove existing customer link")
	}
	contract, err := c.catalog.PushCustomer(ctx, actor.Scope, req.ContractID, link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperror.NotFoundf("contract %s not found", req.ContractID)
		}
		c.steps.Failed(ctx, "assign", "push customer link", err, zap.String("contract_id", req.ContractID))
		return Result{}, apperror.Wrap(err, "add customer link")
	}
	c.steps.Step(ctx, "assign", "customer link replaced",
		zap.String("contract_id", req.ContractID), zap.String("customer_id", target.ID))

	entry := models.ProductEntry{
		PID:         req.ContractID,
		ProductName: req.ContractName,
		ProductType: models.ProductTypeFTL,
		Billing:     billing,
		VendorID:    contract.VendorID,
		VendorName:  contract.CompanyName,
		VendorCID:   actor.Scope,
		VendorLogo:  contract.CompanyLogo,
		Stage:       models.StageNew,
		Type:        req.AssignType,
		QuotationID: req.QuotationID,
		Enabled:     contract.Enabled,
		CreditUsed:  0,
		Date:        time.Now().UTC(),
	}

	if err := c.repo.RemovePending(ctx, target.Scope, target.ID, req.ContractID); err != nil {
		c.steps.Failed(ctx, "assign", "remove stale pending", err, zap.String("customer_id", target.ID))
		return Result{}, apperror.Wrap(err, "remove stale pending entry")
	}
	if err := c.repo.InsertPending(ctx, target.Scope, target.ID, entry); err != nil {
		c.steps.Failed(ctx, "assign", "insert pending", err, zap.String("customer_id", target.ID))
		return Result{}, apperror.Wrap(err, "insert pending entry")
	}
	if err := c.repo.RemoveApproved(ctx, target.Scope, target.ID, req.ContractID); err != nil {
		c.steps.Failed(ctx, "assign", "remove approved", err, zap.String("customer_id", target.ID))
		return Result{}, apperror.Wrap(err, "remove superseded approved entry")
	}
	c.steps.Step(ctx, "assign", "pending entry replaced",
		zap.String("contract_id", req.ContractID),
		zap.String("customer_id", target.ID),
		zap.String("scope", target.Scope))

	if err := c.notifier.Dispatch(ctx, notify.Message{
		Group:     models.RecipientCustomer,
		Scope:     target.Scope,
		CompanyID: target.ID,
		Title:     "Contract Assigned",
		Text:      fmt.Sprintf("%s by %s is awaiting your approval", req.ContractName, actor.CompanyName),
		Priority:  models.PriorityNormal,
		Creator:   actor.ID,
		ActionID:  req.ContractID,
		Source: notify.Source{
			Name:      actor.CompanyName,
			CompanyID: actor.CompanyID,
			Scope:     actor.Scope,
		},
	}); err != nil {
		c.steps.Failed(ctx, "assign", "notify customer", err, zap.String("customer_id", target.ID))
		return Result{}, apperror.Wrap(err, "notify customer")
	}

	return Result{ContractID: req.ContractID, CustomerID: target.ID, Status: "pending"}, nil
}

// buildBilling maps the request terms plus the resolved identities into the
// billing snapshot stored on both sides. Only the schedule field matching
// the schedule type is carried.
func buildBilling(t BillingTerms, vendorCompanyID string, target customerIdentity, assignType string) models.Billing {
	b := models.Billing{
		PaymentType:          t.PaymentType,
		PaymentTime:          t.PaymentTime,
		PrepaidPercent:       t.PrepaidPercent,
		PrepaidPercentOn:     t.PrepaidPercentOn,
		CreditAmount:         t.CreditAmount,
		CreditAmountAssigned: t.CreditAmount,
		CreditUsed:           0,
		ScheduleType:         strings.ToLower(t.ScheduleType),
		BillingInterestValue: t.BillingInterestValue,
		BillingInterestOn:    t.BillingInterestOn,
		BillingInterestDays:  t.BillingInterestDays,
		VendorID:             vendorCompanyID,
		CustomerID:           target.ID,
		CompanyID:            target.Scope,
		CompanyName:          target.Name,
		Type:                 assignType,
	}
	switch b.ScheduleType {
	case models.ScheduleDate:
		b.BillingDate = t.BillingDate
	case models.ScheduleRecursive:
		b.BillingRecursive = t.BillingRecursiveDays
	}
	return b
}
