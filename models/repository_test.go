package models

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: would otherwise get its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, brand, category string, price float64) Product {
	t.Helper()
	ctx := context.Background()

	cat, err := NewCategoriesRepository(db).FirstOrCreateByName(ctx, category)
	require.NoError(t, err)

	p := Product{
		Name:       name,
		Brand:      brand,
		Price:      decimal.NewFromFloat(price),
		Inventory:  5,
		CategoryID: cat.ID,
		Category:   *cat,
	}
	require.NoError(t, NewProductsRepository(db).Save(ctx, &p))
	return p
}

// --- Tests: categories ---

func TestCategoriesRepository_FirstOrCreateByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoriesRepository(db)
	ctx := context.Background()

	first, err := repo.FirstOrCreateByName(ctx, "Shoes")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "Shoes", first.Name)

	second, err := repo.FirstOrCreateByName(ctx, "Shoes")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "Existing category should be reused")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCategoriesRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoriesRepository(db)
	ctx := context.Background()

	cat := &Category{Name: "Clothing"}
	require.NoError(t, repo.Create(ctx, cat))
	assert.NotZero(t, cat.ID)

	byName, err := repo.GetByName(ctx, "Clothing")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, byName.ID)

	cat.Name = "Apparel"
	require.NoError(t, repo.Update(ctx, cat))

	byID, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apparel", byID.Name)

	require.NoError(t, repo.Delete(ctx, cat.ID))

	_, err = repo.GetByID(ctx, cat.ID)
	assert.True(t, IsNotFound(err))
}

func TestCategoriesRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoriesRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.True(t, IsNotFound(err))

	_, err = repo.GetByName(ctx, "Nope")
	assert.True(t, IsNotFound(err))

	err = repo.Update(ctx, &Category{ID: 42, Name: "Ghost"})
	assert.True(t, IsNotFound(err))

	err = repo.Delete(ctx, 42)
	assert.True(t, IsNotFound(err))
}

func TestCategoriesRepository_DeleteReferenced(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "AirMax", "Nike", "Shoes", 120)

	err := NewCategoriesRepository(db).Delete(context.Background(), p.CategoryID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	_, err = NewCategoriesRepository(db).GetByID(context.Background(), p.CategoryID)
	assert.NoError(t, err, "Referenced category must survive")
}

// --- Tests: products ---

func TestProductsRepository_Filters(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "AirMax", "Nike", "Shoes", 120)
	seedProduct(t, db, "Pegasus", "Nike", "Shoes", 95.5)
	seedProduct(t, db, "AirMax", "Nike", "Clothing", 40)
	seedProduct(t, db, "Ultraboost", "Adidas", "Shoes", 150)

	repo := NewProductsRepository(db)
	ctx := context.Background()

	testCases := []struct {
		name          string
		filters       ProductFilters
		expectedNames []string
	}{
		{
			name:          "No filters",
			filters:       ProductFilters{},
			expectedNames: []string{"AirMax", "Pegasus", "AirMax", "Ultraboost"},
		},
		{
			name:          "Category only",
			filters:       ProductFilters{CategoryName: "Shoes"},
			expectedNames: []string{"AirMax", "Pegasus", "Ultraboost"},
		},
		{
			name:          "Category and brand",
			filters:       ProductFilters{CategoryName: "Shoes", Brand: "Nike"},
			expectedNames: []string{"AirMax", "Pegasus"},
		},
		{
			name:          "Brand and name",
			filters:       ProductFilters{Brand: "Nike", Name: "AirMax"},
			expectedNames: []string{"AirMax", "AirMax"},
		},
		{
			name:          "No match",
			filters:       ProductFilters{Brand: "Puma"},
			expectedNames: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			products, err := repo.Find(ctx, tc.filters)
			require.NoError(t, err)
			total, err := repo.Count(ctx, tc.filters)
			require.NoError(t, err)

			// Assert
			names := make([]string, len(products))
			for i, p := range products {
				names[i] = p.Name
				assert.NotEmpty(t, p.Category.Name, "Category should be preloaded")
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, int64(len(tc.expectedNames)), total)
		})
	}
}

func TestProductsRepository_SaveGetDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductsRepository(db)
	ctx := context.Background()

	p := seedProduct(t, db, "AirMax", "Nike", "Shoes", 19.99)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nike", got.Brand)
	assert.Equal(t, "Shoes", got.Category.Name)
	assert.True(t, decimal.NewFromFloat(19.99).Equal(got.Price))

	got.Inventory = 11
	require.NoError(t, repo.Save(ctx, got))

	reloaded, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, reloaded.Inventory)

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err = repo.GetByID(ctx, p.ID)
	assert.True(t, IsNotFound(err))

	err = repo.Delete(ctx, p.ID)
	assert.True(t, IsNotFound(err))
}

func TestTransactor_RollsBack(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactor(db)
	categories := NewCategoriesRepository(db)
	ctx := context.Background()

	boom := errors.New("product write failed")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := categories.FirstOrCreateByName(ctx, "Orphan"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = categories.GetByName(ctx, "Orphan")
	assert.True(t, IsNotFound(err), "Category must not outlive the failed transaction")
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "product", Key: uint(7)}
	assert.Equal(t, "product 7 not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsNotFound(errors.New("product 7 not found")))
}
