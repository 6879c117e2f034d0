// internal/app/system/approval/coordinator.go
package approval

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/app/store/catalog"
	"github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	"github.com/dalemusser/freighthub/internal/app/store/directory"
	"github.com/dalemusser/freighthub/internal/app/store/vendorrepo"
	"github.com/dalemusser/freighthub/internal/app/system/auth"
	"github.com/dalemusser/freighthub/internal/app/system/notify"
	"github.com/dalemusser/freighthub/internal/app/system/sanitize"
	"github.com/dalemusser/freighthub/internal/app/system/serviceability"
	"github.com/dalemusser/freighthub/internal/app/system/steplog"
	"github.com/dalemusser/freighthub/internal/apperror"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Decision is a customer's response to a pending assignment. Any response
// other than "approved" is a rejection and requires a reason.
type Decision struct {
	ContractID string `json:"contractId"`
	VendorID   string `json:"vendorId"`
	Response   string `json:"customerResponse"`
	Reason     string `json:"reasonForRejection"`
}

// Approved reports whether the decision approves the assignment.
func (d Decision) Approved() bool {
	return strings.EqualFold(d.Response, models.ResponseApproved)
}

// Validate checks the decision shape before any store access. The
// rejection reason is sanitized in place because it ends up verbatim in
// contract logs and notifications.
func (d *Decision) Validate() error {
	if d.ContractID == "" {
		return apperror.Validationf("contractId is required")
	}
	if d.VendorID == "" {
		return apperror.Validationf("vendorId is required")
	}
	if d.Response == "" {
		return apperror.Validationf("customerResponse is required")
	}
	if !d.Approved() {
		d.Reason = sanitize.Text(d.Reason)
		if d.Reason == "" {
			return apperror.Validationf("reasonForRejection is required when rejecting")
		}
	}
	return nil
}

// Result reports what the approval run did. Contract carries the
// vendor's contract document as it stands after the run.
type Result struct {
	ContractID string           `json:"contractId"`
	VendorID   string           `json:"vendorId"`
	Approved   bool             `json:"approved"`
	Processed  int              `json:"processed"`
	Contract   *models.Contract `json:"contract,omitempty"`
}

// actorIdentity is the customer-side actor, lifted out of the session.
type actorIdentity struct {
	CompanyID    string
	CompanyName  string
	Scope        string
	UserID       string
	UserName     string
	UserFullName string
}

// Coordinator runs the approval choreography. Writes span the customer
// repo, the vendor catalog, the vendor repo, and pincode collections with
// no surrounding transaction; each step is logged under one operation id
// so a failed run can be compensated by hand.
type Coordinator struct {
	directory  *directorystore.Store
	catalog    *catalogstore.Store
	repo       *customerrepostore.Store
	vendorrepo *vendorrepostore.Store
	guard      *Guard
	propagator *serviceability.Propagator
	notifier   *notify.Dispatcher
	steps      *steplog.Logger

	stages map[string]stageHandler
}

func NewCoordinator(
	directory *directorystore.Store,
	catalog *catalogstore.Store,
	repo *customerrepostore.Store,
	vendorrepo *vendorrepostore.Store,
	guard *Guard,
	propagator *serviceability.Propagator,
	notifier *notify.Dispatcher,
	steps *steplog.Logger,
) *Coordinator {
	return &Coordinator{
		directory:  directory,
		catalog:    catalog,
		repo:       repo,
		vendorrepo: vendorrepo,
		guard:      guard,
		propagator: propagator,
		notifier:   notifier,
		steps:      steps,
		stages: map[string]stageHandler{
			models.StageNew:  newStage{},
			models.StageEdit: editStage{},
		},
	}
}

// Approve applies the customer's decision to every pending entry for the
// contract. actor is the signed-in customer user; actor.Scope names the
// customer's repo collection.
func (c *Coordinator) Approve(ctx context.Context, sess *auth.SessionUser, dec Decision) (Result, error) {
	if err := dec.Validate(); err != nil {
		return Result{}, err
	}
	ctx, _ = steplog.NewOperation(ctx)

	actor := actorIdentity{
		CompanyID:    sess.CompanyID,
		CompanyName:  sess.CompanyName,
		Scope:        sess.Scope,
		UserID:       sess.ID,
		UserName:     sess.Name,
		UserFullName: sess.FullName,
	}

	vendor, err := c.directory.ByCompanyID(ctx, dec.VendorID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperror.NotFoundf("vendor %s not found", dec.VendorID)
		}
		return Result{}, apperror.Wrap(err, "resolve vendor")
	}

	if err := c.guard.Check(ctx, actor.Scope, actor.CompanyID, dec.ContractID, dec.VendorID); err != nil {
		return Result{}, err
	}

	repoDoc, err := c.repo.Get(ctx, actor.Scope, actor.CompanyID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Result{}, apperror.NotFoundf("no pending assignments for customer %s", actor.CompanyID)
		}
		return Result{}, apperror.Wrap(err, "load customer repo")
	}
	pending := repoDoc.PendingByContract(dec.ContractID)
	if len(pending) == 0 {
		return Result{}, apperror.NotFoundf("contract %s has no pending assignment", dec.ContractID)
	}

	run := &approvalRun{c: c, actor: actor, dec: dec, vendorScope: vendor.Scope, repo: repoDoc}
	for _, entry := range pending {
		handler, ok := c.stages[entry.Stage]
		if !ok {
			// Legacy entries written before the stage field carried only
			// the two known values; treat anything else as a new stage.
			handler = c.stages[models.StageNew]
		}
		if dec.Approved() {
			err = handler.approve(ctx, run, entry)
		} else {
			err = handler.reject(ctx, run, entry)
		}
		if err != nil {
			return Result{}, err
		}
	}

	if err := c.mirrorEnabledFlag(ctx, run, dec.ContractID); err != nil {
		return Result{}, err
	}

	res := Result{
		ContractID: dec.ContractID,
		VendorID:   dec.VendorID,
		Approved:   dec.Approved(),
		Processed:  len(pending),
	}
	contract, err := c.catalog.Get(ctx, run.vendorScope, dec.ContractID)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return Result{}, apperror.Wrap(err, "load contract view")
		}
	} else {
		res.Contract = &contract
	}
	return res, nil
}

// mirrorEnabledFlag copies the catalog's enabled flag onto the customer's
// approved entry so a contract the vendor disabled mid-approval does not
// show as usable.
func (c *Coordinator) mirrorEnabledFlag(ctx context.Context, run *approvalRun, contractID string) error {
	enabled, err := c.catalog.Enabled(ctx, run.vendorScope, contractID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil
		}
		c.steps.Failed(ctx, "approve", "read enabled flag", err, zap.String("contract_id", contractID))
		return apperror.Wrap(err, "read contract enabled flag")
	}
	if err := c.repo.SetProductEnabled(ctx, run.actor.Scope, run.actor.CompanyID, contractID, enabled); err != nil {
		c.steps.Failed(ctx, "approve", "mirror enabled flag", err, zap.String("contract_id", contractID))
		return apperror.Wrap(err, "mirror contract enabled flag")
	}
	return nil
}

// buildVendorRelation resolves the vendor's directory entry for the email
// and type carried on a first-time relation.
func (c *Coordinator) buildVendorRelation(ctx context.Context, vendorScope, vendorID string, entry models.ProductEntry) (*models.VendorRelation, error) {
	company, err := c.directory.ByCompanyID(ctx, vendorID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, apperror.Wrap(err, "resolve vendor relation details")
	}
	return &models.VendorRelation{
		VID:       vendorID,
		CompanyID: vendorScope,
		Name:      entry.VendorName,
		Email:     company.Email,
		Type:      company.Type,
		Products:  1,
	}, nil
}

// notifyCustomer fans out to the acting customer's own admins. Failures
// are logged as steps and swallowed; the decision already took effect.
func (c *Coordinator) notifyCustomer(ctx context.Context, run *approvalRun, entry models.ProductEntry, title, text, priority string) {
	err := c.notifier.Dispatch(ctx, notify.Message{
		Group:     models.RecipientCustomer,
		Scope:     run.actor.Scope,
		CompanyID: run.actor.CompanyID,
		Title:     title,
		Text:      text,
		Priority:  priority,
		Creator:   run.actor.UserName,
		ActionID:  entry.PID,
		Source: notify.Source{
			Name:      entry.VendorName,
			CompanyID: entry.VendorID,
			Scope:     entry.VendorCID,
		},
	})
	if err != nil {
		c.steps.Failed(ctx, "approve", "notify customer", err, zap.String("contract_id", entry.PID))
	}
}

// notifyVendor fans out to the vendor company's admins.
func (c *Coordinator) notifyVendor(ctx context.Context, run *approvalRun, entry models.ProductEntry, title, text, priority string) {
	err := c.notifier.Dispatch(ctx, notify.Message{
		Group:     models.RecipientVendor,
		Scope:     run.vendorScope,
		CompanyID: entry.VendorID,
		Title:     title,
		Text:      text,
		Priority:  priority,
		Creator:   run.actor.UserName,
		ActionID:  entry.PID,
		Source: notify.Source{
			Name:      run.actor.CompanyName,
			CompanyID: run.actor.CompanyID,
			Scope:     run.actor.Scope,
		},
	})
	if err != nil {
		c.steps.Failed(ctx, "approve", "notify vendor", err, zap.String("contract_id", entry.PID))
	}
}
