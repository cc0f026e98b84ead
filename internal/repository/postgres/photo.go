package postgres

import (
	"context"
	"errors"
	"maps"
	"slices"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

// PhotoRepository maintains the per-parent photo rules: positions are
// exactly 1..N and at most one photo is main. Every mutation locks the parent
// row first so concurrent edits of the same gallery serialise.
type PhotoRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewPhotoRepository(writerDB, readerDB *gorm.DB) *PhotoRepository {
	return &PhotoRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *PhotoRepository) ListByParent(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent) ([]domain.Photo, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, "photos")
	if !ok {
		return []domain.Photo{}, nil
	}

	var photos []domain.Photo
	err := db.Where("parent_type = ? AND parent_id = ?", parent.Type, parent.ID).
		Order(`"order" ASC, created_at ASC`).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Photo, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, "photos")
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var photo domain.Photo
	if err := db.Where("id = ?", id).Take(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// withParent runs fn in a transaction holding the parent row lock, passing the
// current siblings in position order.
func (r *PhotoRepository) withParent(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, fn func(tx *gorm.DB, siblings []domain.Photo) error) error {
	if err := writable(scope); err != nil {
		return err
	}
	if err := parent.Validate(); err != nil {
		return err
	}

	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRow(tx, scope, parent.Table(), parent.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrParentNotFound
			}
			return err
		}

		var siblings []domain.Photo
		err := tx.Where("tenant_id = ? AND parent_type = ? AND parent_id = ?", scope.TenantID(), parent.Type, parent.ID).
			Order(`"order" ASC, created_at ASC`).
			Find(&siblings).Error
		if err != nil {
			return err
		}
		return fn(tx, siblings)
	})
}

func currentPositions(photos []domain.Photo) map[string]int {
	current := make(map[string]int, len(photos))
	for _, p := range photos {
		current[p.ID] = p.Order
	}
	return current
}

// applyMain clears main on every other photo before flagging the target so the
// partial unique index on main photos is never violated mid-transaction.
func applyMain(tx *gorm.DB, changes map[string]bool) error {
	ids := slices.Sorted(maps.Keys(changes))
	for _, id := range ids {
		if changes[id] {
			continue
		}
		if err := tx.Model(&domain.Photo{}).Where("id = ?", id).Update("main", false).Error; err != nil {
			return err
		}
	}
	for _, id := range ids {
		if !changes[id] {
			continue
		}
		if err := tx.Model(&domain.Photo{}).Where("id = ?", id).Update("main", true).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *PhotoRepository) Add(ctx context.Context, scope domain.TenantScope, photo *domain.Photo, position int) error {
	parent := photo.Parent()
	return r.withParent(ctx, scope, parent, func(tx *gorm.DB, siblings []domain.Photo) error {
		wantMain := photo.Main || len(siblings) == 0
		photo.TenantID = scope.TenantID()
		photo.Main = false
		photo.Order = len(siblings) + 1
		if err := tx.Create(photo).Error; err != nil {
			return err
		}

		ordered := domain.InsertAt(domain.PhotoIDs(siblings), photo.ID, position)
		current := currentPositions(siblings)
		current[photo.ID] = photo.Order
		if err := applyPositions(tx, "photos", domain.PositionChanges(current, ordered)); err != nil {
			return err
		}
		photo.Order = domain.Positions(ordered)[photo.ID]

		if !wantMain {
			return nil
		}
		changes, err := domain.MainChanges(append(siblings, *photo), photo.ID)
		if err != nil {
			return err
		}
		if err := applyMain(tx, changes); err != nil {
			return err
		}
		photo.Main = true
		return nil
	})
}

func (r *PhotoRepository) SetMain(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) error {
	return r.withParent(ctx, scope, parent, func(tx *gorm.DB, siblings []domain.Photo) error {
		changes, err := domain.MainChanges(siblings, photoID)
		if err != nil {
			return err
		}
		return applyMain(tx, changes)
	})
}

func (r *PhotoRepository) Reorder(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string, position int) error {
	return r.withParent(ctx, scope, parent, func(tx *gorm.DB, siblings []domain.Photo) error {
		ordered, err := domain.MoveTo(domain.PhotoIDs(siblings), photoID, position)
		if err != nil {
			return err
		}
		return applyPositions(tx, "photos", domain.PositionChanges(currentPositions(siblings), ordered))
	})
}

func (r *PhotoRepository) Delete(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) (*domain.Photo, error) {
	var deleted *domain.Photo
	err := r.withParent(ctx, scope, parent, func(tx *gorm.DB, siblings []domain.Photo) error {
		remaining := make([]domain.Photo, 0, len(siblings))
		for i := range siblings {
			if siblings[i].ID == photoID {
				deleted = &siblings[i]
				continue
			}
			remaining = append(remaining, siblings[i])
		}
		if deleted == nil {
			return domain.ErrNotInSequence
		}

		if err := tx.Where("id = ?", photoID).Delete(&domain.Photo{}).Error; err != nil {
			return err
		}

		ordered := domain.PhotoIDs(remaining)
		if err := applyPositions(tx, "photos", domain.PositionChanges(currentPositions(remaining), ordered)); err != nil {
			return err
		}

		if !deleted.Main || len(remaining) == 0 {
			return nil
		}
		changes, err := domain.MainChanges(remaining, remaining[0].ID)
		if err != nil {
			return err
		}
		return applyMain(tx, changes)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
