package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/presupuestos-app/internal/models"
)

func TestProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db, testLogger())
	ctx := context.Background()

	p := models.Product{Description: "Monitor", UnitPrice: 139.50}
	require.NoError(t, repo.Create(ctx, &p))
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Monitor", got.Description)

	p.Description = "Monitor 27\""
	p.UnitPrice = 189.00
	found, err := repo.Update(ctx, &p)
	require.NoError(t, err)
	require.True(t, found)

	all, err := repo.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Monitor 27\"", all[0].Description)
	require.InDelta(t, 189.00, all[0].UnitPrice, 1e-9)

	existed, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, existed)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestProductUpdateMissingIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db, testLogger())

	found, err := repo.Update(context.Background(), &models.Product{ID: 999, Description: "Ghost", UnitPrice: 1})
	require.NoError(t, err)
	require.False(t, found)
}

func TestProductDeleteAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepo(db, testLogger())

	existed, err := repo.Delete(context.Background(), 999)
	require.NoError(t, err)
	require.False(t, existed)
}

func TestProductDeleteBlockedWhileReferenced(t *testing.T) {
	db := setupTestDB(t)
	products := NewProductRepo(db, testLogger())
	quotations := NewQuotationRepo(db, testLogger())
	ctx := context.Background()

	p := models.Product{Description: "Referenced", UnitPrice: 9.99}
	require.NoError(t, products.Create(ctx, &p))

	q := &models.Quotation{
		RecipientName: "Holder",
		CreatedDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines:         []models.QuotationLine{{ProductID: p.ID, Quantity: 1}},
	}
	require.NoError(t, quotations.Create(ctx, q))

	_, err := products.Delete(ctx, p.ID)
	require.ErrorIs(t, err, ErrProductReferenced)

	// Product survives the blocked delete.
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Once the quotation is gone the delete goes through.
	_, err = quotations.Delete(ctx, q.ID)
	require.NoError(t, err)
	existed, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, existed)
}
