package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

type SubscriberRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewSubscriberRepository(writerDB, readerDB *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *SubscriberRepository) Create(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error {
	if err := writable(scope); err != nil {
		return err
	}
	subscriber.TenantID = scope.TenantID()
	return r.writerDB.WithContext(ctx).Create(subscriber).Error
}

func (r *SubscriberRepository) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Subscriber, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, "subscribers")
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var subscriber domain.Subscriber
	if err := db.Where("id = ?", id).Take(&subscriber).Error; err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (r *SubscriberRepository) List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]domain.Subscriber, int64, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx).Model(&domain.Subscriber{}), scope, "subscribers")
	if !ok {
		return []domain.Subscriber{}, 0, nil
	}
	if filter.Query != "" {
		db = db.Where("email ILIKE ?", "%"+filter.Query+"%")
	}
	db = db.Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var subscribers []domain.Subscriber
	if err := query.Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}

func (r *SubscriberRepository) Update(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error {
	if err := writable(scope); err != nil {
		return err
	}
	if subscriber.TenantID != scope.TenantID() {
		return repository.ErrScopeMismatch
	}
	return r.writerDB.WithContext(ctx).Omit("created_at").Save(subscriber).Error
}

func (r *SubscriberRepository) Delete(ctx context.Context, scope domain.TenantScope, id string) error {
	if err := writable(scope); err != nil {
		return err
	}
	result := r.writerDB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, scope.TenantID()).
		Delete(&domain.Subscriber{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubscriberRepository) DeleteUnconfirmedBefore(ctx context.Context, scope domain.TenantScope, before time.Time) (int64, error) {
	if err := writable(scope); err != nil {
		return 0, err
	}
	result := r.writerDB.WithContext(ctx).
		Where("tenant_id = ? AND confirmed_at IS NULL AND created_at < ?", scope.TenantID(), before).
		Delete(&domain.Subscriber{})
	return result.RowsAffected, result.Error
}
