// internal/app/system/approval/strategy.go
package approval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/freighthub/internal/apperror"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// stageHandler applies the customer's decision to one pending entry. The
// two stages differ in everything that follows the decision: a new-stage
// approval creates the relationship (billing on the contract, pincode
// propagation, vendor relation, both-side notifications), while an
// edit-stage approval only swaps the approved entry in place.
type stageHandler interface {
	approve(ctx context.Context, run *approvalRun, entry models.ProductEntry) error
	reject(ctx context.Context, run *approvalRun, entry models.ProductEntry) error
}

// approvalRun carries the per-request state shared by the handlers.
type approvalRun struct {
	c           *Coordinator
	actor       actorIdentity
	dec         Decision
	vendorScope string
	repo        models.CustomerRepo
}

/*─────────────────────────────────────────────────────────────────────────────*
 | new stage                                                                   |
 *─────────────────────────────────────────────────────────────────────────────*/

type newStage struct{}

func (newStage) approve(ctx context.Context, run *approvalRun, entry models.ProductEntry) error {
	c := run.c
	now := time.Now().UTC()

	billing := entry.Billing
	billing.Type = entry.Type

	if err := c.catalog.ApproveCustomerBilling(ctx, run.vendorScope, entry.PID, run.actor.CompanyID, billing,
		models.LogEntry{Text: approvalLogText(entry, run.actor.CompanyName), Time: now}); err != nil {
		c.steps.Failed(ctx, "approve", "approve customer billing", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "approve customer billing")
	}
	c.steps.Step(ctx, "approve", "customer billing approved",
		zap.String("contract_id", entry.PID), zap.String("customer_id", run.actor.CompanyID))

	merged, err := c.propagator.Propagate(ctx, run.vendorScope, run.actor.Scope, entry.PID)
	if err != nil {
		c.steps.Failed(ctx, "approve", "propagate pincodes", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "propagate pincode serviceability")
	}
	c.steps.Step(ctx, "approve", "pincodes propagated",
		zap.String("contract_id", entry.PID), zap.Int("pincodes", merged))

	vendorKnown := run.repo.HasVendor(run.dec.VendorID)
	entry.Logo = run.repo.Logo
	entry.CreditUsed = 0
	entry.Date = now

	var rel *models.VendorRelation
	if !vendorKnown {
		built, err := c.buildVendorRelation(ctx, run.vendorScope, run.dec.VendorID, entry)
		if err != nil {
			return err
		}
		rel = built
	}
	moved, err := c.repo.MoveToApproved(ctx, run.actor.Scope, run.actor.CompanyID, entry, rel)
	if err != nil {
		c.steps.Failed(ctx, "approve", "move to approved", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "move entry to approved list")
	}
	if !moved {
		// A concurrent request approved the pair between the guard check
		// and this write.
		return apperror.AlreadyProcessedf("contract %s from vendor %s was already processed", entry.PID, run.dec.VendorID)
	}
	c.steps.Step(ctx, "approve", "entry moved to approved",
		zap.String("contract_id", entry.PID), zap.Bool("vendor_relation_created", rel != nil))

	if entry.QuotationID != "" {
		if err := c.vendorrepo.MarkQuotationResponded(ctx, run.vendorScope, run.dec.VendorID,
			entry.QuotationID, entry.PID, entry.ProductName, now); err != nil {
			c.steps.Failed(ctx, "approve", "mark quotation responded", err, zap.String("quotation_id", entry.QuotationID))
			return apperror.Wrap(err, "mark quotation responded")
		}
		c.steps.Step(ctx, "approve", "quotation marked responded", zap.String("quotation_id", entry.QuotationID))
	}
	if !vendorKnown {
		if err := c.vendorrepo.AddCustomerRelation(ctx, run.vendorScope, run.dec.VendorID, models.CustomerRelation{
			CID:       run.actor.CompanyID,
			CompanyID: run.actor.Scope,
			Name:      run.actor.CompanyName,
			Logo:      run.repo.Logo,
			Email:     run.actor.UserName,
		}); err != nil {
			c.steps.Failed(ctx, "approve", "add customer relation", err, zap.String("vendor_id", run.dec.VendorID))
			return apperror.Wrap(err, "add customer relation")
		}
		c.steps.Step(ctx, "approve", "customer relation added", zap.String("vendor_id", run.dec.VendorID))
	}

	c.notifyCustomer(ctx, run, entry, "New Contract Added",
		fmt.Sprintf("%s by %s has been added by %s", entry.ProductName, entry.VendorName, run.actor.UserFullName),
		models.PriorityNormal)
	c.notifyVendor(ctx, run, entry, "Contract Approved",
		fmt.Sprintf("%s has been approved by %s", entry.ProductName, run.actor.CompanyName),
		models.PriorityNormal)
	return nil
}

func (newStage) reject(ctx context.Context, run *approvalRun, entry models.ProductEntry) error {
	c := run.c
	now := time.Now().UTC()
	reason := run.dec.Reason

	if err := c.catalog.AppendLog(ctx, run.vendorScope, entry.PID,
		models.LogEntry{Text: rejectionLogText(entry, run.actor.CompanyName, reason), Time: now}); err != nil {
		c.steps.Failed(ctx, "approve", "append rejection log", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "append rejection log")
	}
	if err := c.catalog.PullCustomer(ctx, run.vendorScope, entry.PID, run.actor.CompanyID); err != nil {
		c.steps.Failed(ctx, "approve", "pull customer link", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "remove customer link")
	}
	if err := c.repo.RemovePending(ctx, run.actor.Scope, run.actor.CompanyID, entry.PID); err != nil {
		c.steps.Failed(ctx, "approve", "remove pending", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "remove pending entry")
	}
	c.steps.Step(ctx, "approve", "assignment rejected",
		zap.String("contract_id", entry.PID), zap.String("customer_id", run.actor.CompanyID))

	if entry.QuotationID != "" {
		if err := c.vendorrepo.MarkQuotationRejected(ctx, run.vendorScope, run.dec.VendorID,
			entry.QuotationID, reason, now); err != nil {
			c.steps.Failed(ctx, "approve", "mark quotation rejected", err, zap.String("quotation_id", entry.QuotationID))
			return apperror.Wrap(err, "mark quotation rejected")
		}
		c.steps.Step(ctx, "approve", "quotation marked rejected", zap.String("quotation_id", entry.QuotationID))
	}

	c.notifyCustomer(ctx, run, entry, "Contract Rejected", reason, models.PriorityNormal)
	c.notifyVendor(ctx, run, entry, "Contract Rejected",
		rejectionLogText(entry, run.actor.CompanyName, reason), models.PriorityHigh)
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | edit stage                                                                  |
 *─────────────────────────────────────────────────────────────────────────────*/

type editStage struct{}

func (editStage) approve(ctx context.Context, run *approvalRun, entry models.ProductEntry) error {
	c := run.c

	// The edit replaces the approved entry in place. Billing, vendor
	// relations, and pincodes were settled by the original approval.
	entry.Edits = nil
	if err := c.repo.PromoteEdit(ctx, run.actor.Scope, run.actor.CompanyID, entry); err != nil {
		c.steps.Failed(ctx, "approve", "promote edit", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "promote edited entry")
	}
	c.steps.Step(ctx, "approve", "edit promoted",
		zap.String("contract_id", entry.PID), zap.String("customer_id", run.actor.CompanyID))
	return nil
}

func (editStage) reject(ctx context.Context, run *approvalRun, entry models.ProductEntry) error {
	c := run.c
	now := time.Now().UTC()
	reason := run.dec.Reason
	text := fmt.Sprintf("Service edit rejected by customer %s due to %s", run.actor.CompanyName, reason)

	if err := c.catalog.AppendLog(ctx, run.vendorScope, entry.PID,
		models.LogEntry{Text: text, Time: now}); err != nil {
		c.steps.Failed(ctx, "approve", "append edit rejection log", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "append rejection log")
	}
	if err := c.repo.RemovePending(ctx, run.actor.Scope, run.actor.CompanyID, entry.PID); err != nil {
		c.steps.Failed(ctx, "approve", "remove pending edit", err, zap.String("contract_id", entry.PID))
		return apperror.Wrap(err, "remove pending entry")
	}
	c.steps.Step(ctx, "approve", "edit rejected", zap.String("contract_id", entry.PID))

	c.notifyCustomer(ctx, run, entry, "Service Edit Rejected", reason, models.PriorityNormal)
	c.notifyVendor(ctx, run, entry, "Service Edit Rejected", text, models.PriorityHigh)
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
 | log texts                                                                   |
 *─────────────────────────────────────────────────────────────────────────────*/

func approvalLogText(entry models.ProductEntry, customerName string) string {
	if entry.QuotationID != "" {
		return fmt.Sprintf("Contract against quotation %s approved by customer %s", entry.QuotationID, customerName)
	}
	return fmt.Sprintf("Contract approved by customer %s", customerName)
}

func rejectionLogText(entry models.ProductEntry, customerName, reason string) string {
	if entry.QuotationID != "" {
		return fmt.Sprintf("Contract against quotation %s rejected by customer %s due to %s", entry.QuotationID, customerName, reason)
	}
	return fmt.Sprintf("Contract rejected by customer %s due to %s", customerName, reason)
}
