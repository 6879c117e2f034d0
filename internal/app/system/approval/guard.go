// internal/app/system/approval/guard.go
package approval

import (
	"context"

	customerrepostore "github.com/dalemusser/freighthub/internal/app/store/customerrepo"
	"github.com/dalemusser/freighthub/internal/apperror"
)

// Guard is the duplicate-action check: a customer decision on a
// (contract, vendor) pair must be applied at most once. The approved list
// is the record of applied decisions, so an existing entry for the pair
// means the approval already ran.
//
// The check is advisory only. Two racing requests can both pass it; the
// conditional filter in MoveToApproved is what actually serializes them.
type Guard struct {
	repo *customerrepostore.Store
}

func NewGuard(repo *customerrepostore.Store) *Guard {
	return &Guard{repo: repo}
}

// Check returns an AlreadyProcessed error when the pair was already
// approved for the customer.
func (g *Guard) Check(ctx context.Context, scope, customerID, contractID, vendorID string) error {
	taken, err := g.repo.HasApproved(ctx, scope, customerID, contractID, vendorID)
	if err != nil {
		return apperror.Wrap(err, "duplicate-action check")
	}
	if taken {
		return apperror.AlreadyProcessedf("contract %s from vendor %s was already processed", contractID, vendorID)
	}
	return nil
}
