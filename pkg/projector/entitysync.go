package projector

import (
	"regexp"
	"strings"
	"time"

	"github.com/cuemby/naxml-ingest/pkg/naxml"
	"github.com/cuemby/naxml-ingest/pkg/types"
	"github.com/google/uuid"
)

var localCodePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// deriveLocalCode produces the local `code` for a newly discovered entity:
// the vendor pos_code itself, uppercased and clipped, when it already
// looks like a code; otherwise a slug of the display name.
func deriveLocalCode(posCode, name string) string {
	if localCodePattern.MatchString(posCode) {
		code := strings.ToUpper(posCode)
		if len(code) > 50 {
			code = code[:50]
		}
		return code
	}
	return slugify(name)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// SyncDepartments upserts every entity of a DepartmentMaintenance document
// and, for a Full maintenance, deactivates anything absent from the set.
func (p *Projector) SyncDepartments(storeID, companyID string, source types.POSSource, doc *naxml.MaintenanceDocument) (types.SyncCategoryResult, error) {
	result := types.SyncCategoryResult{Received: len(doc.Entities)}
	keep := make(map[string]bool, len(doc.Entities))

	for _, e := range doc.Entities {
		if e.Code == "" {
			result.Errors = append(result.Errors, "department entity missing pos_code")
			continue
		}
		keep[e.Code] = true
		isTaxable := boolOrFalse(e.IsTaxable)

		existing, err := p.store.GetDepartmentByPOSCode(storeID, e.Code)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if existing != nil {
			changed := existing.Name != e.Description || existing.IsTaxable != isTaxable
			existing.Name = e.Description
			existing.IsTaxable = isTaxable
			existing.POSSource = source
			existing.LastSyncedAt = time.Now()
			if e.Action == "Delete" {
				existing.IsActive = false
			} else if !existing.IsActive {
				existing.IsActive = true
				changed = true
			}
			if err := p.store.UpsertDepartment(existing); err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			if changed {
				result.Updated++
			}
			continue
		}

		now := time.Now()
		dept := &types.Department{
			ID:           uuid.NewString(),
			StoreID:      storeID,
			CompanyID:    companyID,
			Code:         deriveLocalCode(e.Code, e.Description),
			POSCode:      e.Code,
			Name:         e.Description,
			IsTaxable:    isTaxable,
			IsActive:     e.Action != "Delete",
			POSSource:    source,
			LastSyncedAt: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := p.store.UpsertDepartment(dept); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Created++
	}

	if doc.Header.Kind == naxml.MaintenanceFull {
		n, err := p.store.DeactivateDepartmentsNotIn(storeID, source, keep)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Deactivated = n
		}
	}

	return result, nil
}

// SyncTenderTypes upserts every entity of a TenderMaintenance document.
func (p *Projector) SyncTenderTypes(storeID, companyID string, source types.POSSource, doc *naxml.MaintenanceDocument) (types.SyncCategoryResult, error) {
	result := types.SyncCategoryResult{Received: len(doc.Entities)}
	keep := make(map[string]bool, len(doc.Entities))

	for _, e := range doc.Entities {
		if e.Code == "" {
			result.Errors = append(result.Errors, "tender entity missing pos_code")
			continue
		}
		keep[e.Code] = true
		isElectronic := boolOrFalse(e.IsElectronic)

		existing, err := p.store.GetTenderTypeByPOSCode(storeID, e.Code)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if existing != nil {
			changed := existing.Name != e.Description || existing.IsElectronic != isElectronic
			existing.Name = e.Description
			existing.IsElectronic = isElectronic
			existing.POSSource = source
			existing.LastSyncedAt = time.Now()
			if e.Action == "Delete" {
				existing.IsActive = false
			} else if !existing.IsActive {
				existing.IsActive = true
				changed = true
			}
			if err := p.store.UpsertTenderType(existing); err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			if changed {
				result.Updated++
			}
			continue
		}

		now := time.Now()
		tt := &types.TenderType{
			ID:           uuid.NewString(),
			StoreID:      storeID,
			CompanyID:    companyID,
			Code:         deriveLocalCode(e.Code, e.Description),
			POSCode:      e.Code,
			Name:         e.Description,
			IsElectronic: isElectronic,
			IsActive:     e.Action != "Delete",
			POSSource:    source,
			LastSyncedAt: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := p.store.UpsertTenderType(tt); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Created++
	}

	if doc.Header.Kind == naxml.MaintenanceFull {
		n, err := p.store.DeactivateTenderTypesNotIn(storeID, source, keep)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Deactivated = n
		}
	}

	return result, nil
}

// SyncTaxRates upserts every entity of a TaxRateMaintenance document.
func (p *Projector) SyncTaxRates(storeID, companyID string, source types.POSSource, doc *naxml.MaintenanceDocument) (types.SyncCategoryResult, error) {
	result := types.SyncCategoryResult{Received: len(doc.Entities)}
	keep := make(map[string]bool, len(doc.Entities))

	for _, e := range doc.Entities {
		if e.Code == "" {
			result.Errors = append(result.Errors, "tax rate entity missing pos_code")
			continue
		}
		keep[e.Code] = true
		rate := floatOrZero(e.RatePercent)

		existing, err := p.store.GetTaxRateByPOSCode(storeID, e.Code)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		if existing != nil {
			changed := existing.Name != e.Description || existing.RatePercent != rate
			existing.Name = e.Description
			existing.RatePercent = rate
			existing.POSSource = source
			existing.LastSyncedAt = time.Now()
			if e.Action == "Delete" {
				existing.IsActive = false
			} else if !existing.IsActive {
				existing.IsActive = true
				changed = true
			}
			if err := p.store.UpsertTaxRate(existing); err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			if changed {
				result.Updated++
			}
			continue
		}

		now := time.Now()
		tr := &types.TaxRate{
			ID:           uuid.NewString(),
			StoreID:      storeID,
			CompanyID:    companyID,
			Code:         deriveLocalCode(e.Code, e.Description),
			POSCode:      e.Code,
			Name:         e.Description,
			RatePercent:  rate,
			IsActive:     e.Action != "Delete",
			POSSource:    source,
			LastSyncedAt: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := p.store.UpsertTaxRate(tr); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Created++
	}

	if doc.Header.Kind == naxml.MaintenanceFull {
		n, err := p.store.DeactivateTaxRatesNotIn(storeID, source, keep)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Deactivated = n
		}
	}

	return result, nil
}
