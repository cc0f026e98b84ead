package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

// contentKind describes how one content table is stored.
type contentKind struct {
	recordType string
	table      string
	// slugColumn is the public identifier column, empty when records are addressed by id only.
	slugColumn string
	history    bool
	status     bool
	photos     bool
	orderBy    string
	filter     func(db *gorm.DB, filter domain.ContentFilter) *gorm.DB
}

func (k contentKind) column(name string) string {
	return fmt.Sprintf("%s.%s", k.table, name)
}

// ContentRepository implements repository.ContentRepository for any translatable table.
type ContentRepository[T domain.Record] struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
	kind     contentKind

	// Hooks run inside the write transaction.
	afterCreate func(tx *gorm.DB, scope domain.TenantScope, record *T) error
	afterDelete func(tx *gorm.DB, scope domain.TenantScope, id string) error
}

func newContentRepository[T domain.Record](writerDB, readerDB *gorm.DB, kind contentKind) *ContentRepository[T] {
	return &ContentRepository[T]{
		writerDB: writerDB,
		readerDB: readerDB,
		kind:     kind,
	}
}

func (r *ContentRepository[T]) preload(db *gorm.DB) *gorm.DB {
	db = db.Preload("Translations")
	if r.kind.photos {
		db = db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC, created_at ASC`)
		})
	}
	return db
}

func (r *ContentRepository[T]) applyFilter(db *gorm.DB, filter domain.ContentFilter) *gorm.DB {
	if r.kind.status && filter.Status != "" {
		db = db.Where(r.kind.column("status")+" = ?", filter.Status)
	}
	if filter.Query != "" {
		db = db.Where(
			fmt.Sprintf("EXISTS (SELECT 1 FROM translations t WHERE t.translatable_type = ? AND t.translatable_id = %s AND t.fields::text ILIKE ?)", r.kind.column("id")),
			r.kind.recordType, "%"+filter.Query+"%",
		)
	}
	if r.kind.filter != nil {
		db = r.kind.filter(db, filter)
	}
	return db
}

func (r *ContentRepository[T]) List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]T, int64, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx).Model(new(T)), scope, r.kind.table)
	if !ok {
		return []T{}, 0, nil
	}
	db = r.applyFilter(db, filter).Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.preload(db).Order(r.kind.orderBy)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []T
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *ContentRepository[T]) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*T, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, r.kind.table)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var record T
	if err := r.preload(db).Where(r.kind.column("id")+" = ?", id).Take(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ContentRepository[T]) GetBySlug(ctx context.Context, scope domain.TenantScope, slug string) (*T, error) {
	if r.kind.slugColumn == "" {
		return r.GetByID(ctx, scope, slug)
	}
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, r.kind.table)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var record T
	err := r.preload(db.Session(&gorm.Session{})).Where(r.kind.column(r.kind.slugColumn)+" = ?", slug).Take(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) || !r.kind.history {
		return nil, err
	}

	history := r.readerDB.WithContext(ctx).Model(&domain.SlugHistory{}).
		Select("sluggable_id").
		Where("sluggable_type = ? AND slug = ?", r.kind.recordType, slug)
	history, _ = scoped(history, scope, "slug_histories")

	err = r.preload(db).Where(r.kind.column("id")+" IN (?)", history).Take(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ContentRepository[T]) SlugExists(ctx context.Context, scope domain.TenantScope, slug, excludeID string) (bool, error) {
	if r.kind.slugColumn == "" {
		return false, nil
	}
	db, ok := scoped(r.readerDB.WithContext(ctx).Model(new(T)), scope, r.kind.table)
	if !ok {
		return false, nil
	}
	db = db.Where(r.kind.column(r.kind.slugColumn)+" = ?", slug)
	if excludeID != "" {
		db = db.Where(r.kind.column("id")+" <> ?", excludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 || !r.kind.history {
		return count > 0, nil
	}

	history, _ := scoped(r.readerDB.WithContext(ctx).Model(&domain.SlugHistory{}), scope, "slug_histories")
	history = history.Where("sluggable_type = ? AND slug = ?", r.kind.recordType, slug)
	if excludeID != "" {
		history = history.Where("sluggable_id <> ?", excludeID)
	}
	if err := history.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ContentRepository[T]) Create(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error {
	if err := writable(scope); err != nil {
		return err
	}
	if (*record).OwnerID() != scope.TenantID() {
		return repository.ErrScopeMismatch
	}

	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return err
		}
		if r.afterCreate != nil {
			if err := r.afterCreate(tx, scope, record); err != nil {
				return err
			}
		}
		return upsertTranslations(tx, scope, r.kind.recordType, (*record).RecordID(), translations)
	})
}

func (r *ContentRepository[T]) Update(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error {
	if err := writable(scope); err != nil {
		return err
	}
	if (*record).OwnerID() != scope.TenantID() {
		return repository.ErrScopeMismatch
	}
	id := (*record).RecordID()

	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, scope, r.kind.table, id); err != nil {
			return err
		}

		var previous []string
		if r.kind.history {
			if err := tx.Table(r.kind.table).Where("id = ?", id).Pluck(r.kind.slugColumn, &previous).Error; err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations, "created_at").Save(record).Error; err != nil {
			return err
		}

		if slug := (*record).RecordSlug(); r.kind.history && len(previous) == 1 && previous[0] != slug {
			if err := r.recordSlugChange(tx, scope, id, previous[0], slug); err != nil {
				return err
			}
		}

		return upsertTranslations(tx, scope, r.kind.recordType, id, translations)
	})
}

// recordSlugChange keeps the old slug resolvable and drops any history row that
// would shadow the new one.
func (r *ContentRepository[T]) recordSlugChange(tx *gorm.DB, scope domain.TenantScope, id, oldSlug, newSlug string) error {
	err := tx.Where("tenant_id = ? AND sluggable_type = ? AND slug = ?", scope.TenantID(), r.kind.recordType, newSlug).
		Delete(&domain.SlugHistory{}).Error
	if err != nil {
		return err
	}

	entry := domain.SlugHistory{
		TenantID:      scope.TenantID(),
		SluggableType: r.kind.recordType,
		SluggableID:   id,
		Slug:          oldSlug,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "sluggable_type"}, {Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"sluggable_id"}),
	}).Create(&entry).Error
}

func (r *ContentRepository[T]) Delete(ctx context.Context, scope domain.TenantScope, id string) error {
	if err := writable(scope); err != nil {
		return err
	}

	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, scope, r.kind.table, id); err != nil {
			return err
		}

		if err := tx.Where("translatable_type = ? AND translatable_id = ?", r.kind.recordType, id).
			Delete(&domain.Translation{}).Error; err != nil {
			return err
		}
		if r.kind.photos {
			if err := tx.Where("parent_type = ? AND parent_id = ?", r.kind.recordType, id).
				Delete(&domain.Photo{}).Error; err != nil {
				return err
			}
		}
		if r.kind.history {
			if err := tx.Where("sluggable_type = ? AND sluggable_id = ?", r.kind.recordType, id).
				Delete(&domain.SlugHistory{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Table(r.kind.table).Where("id = ? AND tenant_id = ?", id, scope.TenantID()).
			Delete(new(T)).Error; err != nil {
			return err
		}

		if r.afterDelete != nil {
			return r.afterDelete(tx, scope, id)
		}
		return nil
	})
}
