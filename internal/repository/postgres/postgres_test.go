package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestTenantRepository_GetByAPIKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db, db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tenants" WHERE api_key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "active"}).AddRow("t1", "acme", "Acme", true))

	tenant, err := repo.GetByAPIKey(context.Background(), "key-1")

	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Slug)
	assert.True(t, tenant.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_GetByDomainIsCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db, db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tenants" WHERE lower(domain) = $1 ORDER BY created_at ASC`)).
		WithArgs("acme.example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t1"))

	_, err := repo.GetByDomain(context.Background(), "ACME.example.com")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tenants" WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_CountDependents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db, db)

	for i, table := range tenantOwnedTables {
		count := 0
		if i == 1 {
			count = 2
		}
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "` + table + `" WHERE tenant_id = $1`)).
			WithArgs("t1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
	}

	total, err := repo.CountDependents(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_ListByParentIsScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPhotoRepository(db, db)
	parent := domain.PhotoParent{Type: domain.TypeListing, ID: "l1"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "photos" WHERE photos.tenant_id = $1 AND (parent_type = $2 AND parent_id = $3) ORDER BY "order" ASC, created_at ASC`)).
		WithArgs("t1", domain.TypeListing, "l1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order", "main"}).AddRow("p1", 1, true).AddRow("p2", 2, false))

	photos, err := repo.ListByParent(context.Background(), domain.ScopeTo("t1"), parent)

	require.NoError(t, err)
	assert.Len(t, photos, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_UnboundScopeNeverQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPhotoRepository(db, db)
	parent := domain.PhotoParent{Type: domain.TypeListing, ID: "l1"}

	photos, err := repo.ListByParent(context.Background(), domain.TenantScope{}, parent)
	assert.NoError(t, err)
	assert.Empty(t, photos)

	_, err = repo.GetByID(context.Background(), domain.TenantScope{}, "p1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.SetMain(context.Background(), domain.CrossTenant(), parent, "p1")
	assert.ErrorIs(t, err, repository.ErrTenantRequired)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotoRepository_MissingParent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPhotoRepository(db, db)
	parent := domain.PhotoParent{Type: domain.TypeListing, ID: "other-tenants-listing"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "listings" WHERE id = \$1 AND tenant_id = \$2 FOR UPDATE`).
		WithArgs("other-tenants-listing", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Reorder(context.Background(), domain.ScopeTo("t1"), parent, "p1", 1)

	assert.ErrorIs(t, err, repository.ErrParentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_UnboundWriteIsRefused(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlogPostRepository(db, db)

	err := repo.Create(context.Background(), domain.TenantScope{}, &domain.BlogPost{ID: "b1"}, nil)
	assert.ErrorIs(t, err, repository.ErrTenantRequired)

	posts, total, err := repo.List(context.Background(), domain.TenantScope{}, domain.ContentFilter{})
	assert.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_DeleteUnconfirmedBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubscriberRepository(db, db)
	before := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subscribers" WHERE tenant_id = $1 AND confirmed_at IS NULL AND created_at < $2`)).
		WithArgs("acme", before).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	deleted, err := repo.DeleteUnconfirmedBefore(context.Background(), domain.ScopeTo("acme"), before)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_DeleteUnconfirmedRequiresTenant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSubscriberRepository(db, db)

	_, err := repo.DeleteUnconfirmedBefore(context.Background(), domain.CrossTenant(), time.Now())

	assert.ErrorIs(t, err, repository.ErrTenantRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
