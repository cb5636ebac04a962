package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestOrderRepo_NextOrderNumber(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT nextval('order_number_seq')`)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(42))

	n, err := repo.NextOrderNumber(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_NextInvoiceNumber(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewInvoiceRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT nextval('invoice_number_seq')`)).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(7))

	n, err := repo.NextInvoiceNumber(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestUserRepo_FindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, u)
}

func TestUserRepo_ListActiveByRoles_EmptyRolesSkipsQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	users, err := repo.ListActiveByRoles(context.Background(), nil, []uuid.UUID{uuid.New()}, "")
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListActiveByRoles_ExcludesIDs(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*role IN .*id NOT IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "role", "is_active"}).
			AddRow(id.String(), "d@example.com", "Dora", "distributor", true))

	users, err := repo.ListActiveByRoles(context.Background(),
		[]model.Role{model.RoleDistributor}, []uuid.UUID{uuid.New()}, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, id, users[0].ID)
	assert.Equal(t, model.RoleDistributor, users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepo_UpsertUsesCompositeConflictTarget(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewInventoryRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "inventory" .*ON CONFLICT \("distributor_id","product_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), &model.Inventory{
		DistributorID: uuid.New(),
		ProductID:     uuid.New(),
		Quantity:      10,
		SellingPrice:  decimal.RequireFromString("12.50"),
		IsAvailable:   true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Stats(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewOrderRepository(gormDB)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total.*FROM "orders" WHERE retailer_id = \$`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "completed", "monthly_spend"}).
			AddRow(3, 1, 1, "125.50"))

	stats, err := repo.Stats(context.Background(), uuid.New(), true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Completed)
	assert.True(t, stats.MonthlySpend.Equal(decimal.RequireFromString("125.5")))
}

func TestPartnershipRepo_PartnerIDsOf(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewPartnershipRepository(gormDB)

	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT DISTINCT "partner_id" FROM "partnerships" WHERE requester_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).AddRow(a.String()).AddRow(b.String()))

	ids, err := repo.PartnerIDsOf(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, ids)
}

func TestFavoriteRepo_Delete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewFavoriteRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "favorites" WHERE`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNotificationRepo_MarkDelivered(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkDelivered(context.Background(), uuid.New(), time.Now()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_ListStale_OnlyReachableUsers(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewNotificationRepository(gormDB)
	cutoff := time.Now().Add(-time.Minute)
	id := uuid.New()

	mock.ExpectQuery(`JOIN users ON users.id = notifications.user_id WHERE .*notifications.is_delivered = .* users.whatsapp_number IS NOT NULL .*ORDER BY notifications.created_at ASC LIMIT \$3`).
		WithArgs(false, cutoff, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "message", "type", "is_delivered"}).
			AddRow(id.String(), uuid.NewString(), "hi", "general", false))

	rows, err := repo.ListStale(context.Background(), cutoff, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartnershipRepo_UpdateStatus_IsConditional(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewPartnershipRepository(gormDB)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "partnerships" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	err := repo.UpdateStatus(context.Background(), nil, id, model.PartnershipPending, model.PartnershipApproved)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "partnerships" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	err = repo.UpdateStatus(context.Background(), nil, id, model.PartnershipPending, model.PartnershipRejected)
	assert.ErrorIs(t, err, repository.ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_UpdateStatus_StaleRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WithArgs(model.OrderCancelled, sqlmock.AnyArg(), sqlmock.AnyArg(), model.OrderConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), nil, uuid.New(), model.OrderConfirmed, model.OrderCancelled)
	assert.ErrorIs(t, err, repository.ErrStaleStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListActiveByRoles_Search(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewUserRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*role IN .*business_name ILIKE .* OR email ILIKE .* OR first_name ILIKE .* OR last_name ILIKE`).
		WithArgs(true, model.RoleRetailer, "%corner%", "%corner%", "%corner%", "%corner%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "is_active"}).
			AddRow(uuid.NewString(), "corner@example.com", "retailer", true))

	users, err := repo.ListActiveByRoles(context.Background(), []model.Role{model.RoleRetailer}, nil, " corner ")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
