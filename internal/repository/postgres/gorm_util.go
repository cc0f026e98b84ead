package postgres

import (
	"fmt"
	"maps"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

// scoped applies the tenant isolation of scope to db. The second result is false
// when the scope is unbound, in which case the caller must not query at all.
func scoped(db *gorm.DB, scope domain.TenantScope, table string) (*gorm.DB, bool) {
	if !scope.Readable() {
		return db, false
	}
	if scope.IsCrossTenant() {
		return db, true
	}
	return db.Where(fmt.Sprintf("%s.tenant_id = ?", table), scope.TenantID()), true
}

// writable refuses writes that are not bound to exactly one tenant.
func writable(scope domain.TenantScope) error {
	if !scope.Bound() {
		return repository.ErrTenantRequired
	}
	return nil
}

// lockRow takes a FOR UPDATE lock on one tenant-owned row and fails with
// gorm.ErrRecordNotFound when the row is not visible in scope.
func lockRow(tx *gorm.DB, scope domain.TenantScope, table, id string) error {
	var ids []string
	err := tx.Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, scope.TenantID()).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// lockTenant serialises per-tenant sequence mutations.
func lockTenant(tx *gorm.DB, tenantID string) error {
	var ids []string
	err := tx.Table("tenants").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", tenantID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyPositions writes only the positions that changed, in id order so
// concurrent writers lock rows in the same sequence.
func applyPositions(tx *gorm.DB, table string, changes map[string]int) error {
	for _, id := range slices.Sorted(maps.Keys(changes)) {
		position := changes[id]
		if err := tx.Table(table).Where("id = ?", id).UpdateColumn("order", position).Error; err != nil {
			return err
		}
	}
	return nil
}

func translationConflict() clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{
			{Name: "translatable_type"},
			{Name: "translatable_id"},
			{Name: "locale"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}
}

func upsertTranslations(tx *gorm.DB, scope domain.TenantScope, recordType, recordID string, rows []domain.Translation) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].TenantID = scope.TenantID()
		rows[i].TranslatableType = recordType
		rows[i].TranslatableID = recordID
	}
	return tx.Clauses(translationConflict()).Create(&rows).Error
}
