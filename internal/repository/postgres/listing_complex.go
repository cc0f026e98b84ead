package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
)

var listingComplexKind = contentKind{
	recordType: domain.TypeListingComplex,
	table:      "listing_complexes",
	slugColumn: "slug",
	history:    true,
	status:     true,
	photos:     true,
	orderBy:    `listing_complexes."order" ASC, listing_complexes.created_at ASC`,
}

// ListingComplexRepository keeps complexes densely ordered per tenant. The
// tenant row is the lock parent for every sequence mutation.
type ListingComplexRepository struct {
	*ContentRepository[domain.ListingComplex]
}

func NewListingComplexRepository(writerDB, readerDB *gorm.DB) *ListingComplexRepository {
	r := &ListingComplexRepository{
		ContentRepository: newContentRepository[domain.ListingComplex](writerDB, readerDB, listingComplexKind),
	}
	r.afterCreate = r.insertIntoSequence
	r.afterDelete = r.compactSequence
	return r
}

func (r *ListingComplexRepository) sequence(tx *gorm.DB, tenantID string) ([]string, map[string]int, error) {
	var rows []struct {
		ID    string
		Order int
	}
	err := tx.Table("listing_complexes").
		Select(`id, "order"`).
		Where("tenant_id = ?", tenantID).
		Order(`"order" ASC, created_at ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(rows))
	current := make(map[string]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		current[row.ID] = row.Order
	}
	return ids, current, nil
}

// insertIntoSequence places a new complex at its requested order, appending
// when the order is 0 or past the end.
func (r *ListingComplexRepository) insertIntoSequence(tx *gorm.DB, scope domain.TenantScope, record *domain.ListingComplex) error {
	if err := lockTenant(tx, scope.TenantID()); err != nil {
		return err
	}
	ids, current, err := r.sequence(tx, scope.TenantID())
	if err != nil {
		return err
	}

	ordered := domain.InsertAt(domain.Remove(ids, record.ID), record.ID, record.Order)
	current[record.ID] = -1
	changes := domain.PositionChanges(current, ordered)
	if err := applyPositions(tx, "listing_complexes", changes); err != nil {
		return err
	}
	record.Order = domain.Positions(ordered)[record.ID]
	return nil
}

// compactSequence closes the gap left by a deleted complex and detaches its listings.
func (r *ListingComplexRepository) compactSequence(tx *gorm.DB, scope domain.TenantScope, id string) error {
	err := tx.Table("listings").
		Where("tenant_id = ? AND listing_complex_id = ?", scope.TenantID(), id).
		UpdateColumn("listing_complex_id", nil).Error
	if err != nil {
		return err
	}

	if err := lockTenant(tx, scope.TenantID()); err != nil {
		return err
	}
	ids, current, err := r.sequence(tx, scope.TenantID())
	if err != nil {
		return err
	}
	return applyPositions(tx, "listing_complexes", domain.PositionChanges(current, ids))
}

func (r *ListingComplexRepository) Reorder(ctx context.Context, scope domain.TenantScope, id string, position int) error {
	if err := writable(scope); err != nil {
		return err
	}

	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTenant(tx, scope.TenantID()); err != nil {
			return err
		}
		ids, current, err := r.sequence(tx, scope.TenantID())
		if err != nil {
			return err
		}

		ordered, err := domain.MoveTo(ids, id, position)
		if err != nil {
			return gorm.ErrRecordNotFound
		}
		return applyPositions(tx, "listing_complexes", domain.PositionChanges(current, ordered))
	})
}
