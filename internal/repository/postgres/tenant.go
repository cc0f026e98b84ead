package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
)

// tenantOwnedTables are checked before a tenant may be deleted.
var tenantOwnedTables = []string{
	"listings",
	"listing_complexes",
	"blog_posts",
	"club_stories",
	"testimonials",
	"variables",
	"subscribers",
	"photos",
}

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if err := r.writerDB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).Where("api_key = ?", apiKey).Take(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domainName string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.readerDB.WithContext(ctx).
		Where("lower(domain) = ?", strings.ToLower(domainName)).
		Order("created_at ASC").
		Take(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	return r.writerDB.WithContext(ctx).Omit("created_at").Save(tenant).Error
}

func (r *TenantRepository) Delete(ctx context.Context, id string) error {
	result := r.writerDB.WithContext(ctx).Delete(&domain.Tenant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	db := r.readerDB.WithContext(ctx)
	if filter.Active != nil {
		db = db.Where("active = ?", *filter.Active)
	}

	var tenants []domain.Tenant
	if err := db.Order("name ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *TenantRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	var total int64
	for _, table := range tenantOwnedTables {
		var count int64
		if err := r.readerDB.WithContext(ctx).Table(table).Where("tenant_id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
