// internal/app/system/serviceability/propagator.go
package serviceability

import (
	"context"

	pincodestore "github.com/dalemusser/freighthub/internal/app/store/pincodes"
	"github.com/dalemusser/freighthub/internal/domain/models"
)

// Propagator copies a contract's pincode serviceability from the vendor's
// scope into the approving customer's scope. It runs once per contract, on
// first-time approval; edits never touch pincodes.
type Propagator struct {
	pincodes *pincodestore.Store
}

func New(pincodes *pincodestore.Store) *Propagator {
	return &Propagator{pincodes: pincodes}
}

// Propagate reads every vendor-scope pincode tagged with the contract,
// folds the pincode's regional classification into the contract entry, and
// merges the whole set into the customer scope as one batch. When the
// vendor has no pincodes for the contract nothing is written.
func (p *Propagator) Propagate(ctx context.Context, vendorScope, customerScope, contractID string) (int, error) {
	rows, err := p.pincodes.ByContract(ctx, vendorScope, contractID)
	if err != nil {
		return 0, err
	}

	merges := make([]pincodestore.Merge, 0, len(rows))
	for _, row := range rows {
		entry, ok := contractEntry(row, contractID)
		if !ok {
			continue
		}
		entry.Region = row.Region
		entry.SubRegion = row.SubRegion
		entry.Metro = row.Metro
		entry.ODA = row.ODA
		merges = append(merges, pincodestore.Merge{Pincode: row.Pincode, Product: entry})
	}

	if len(merges) == 0 {
		return 0, nil
	}
	if err := p.pincodes.BulkMerge(ctx, customerScope, merges); err != nil {
		return 0, err
	}
	return len(merges), nil
}

func contractEntry(row models.PincodeServiceability, contractID string) (models.PincodeProduct, bool) {
	for _, pr := range row.Products {
		if pr.PID == contractID {
			return pr, true
		}
	}
	return models.PincodeProduct{}, false
}
