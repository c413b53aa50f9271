package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fridge_backend/internal/feature/inventory/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Record{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestRecordPostgres_Upsert_CreatesNewRecord(t *testing.T) {
	repo := NewRecordPostgres(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &entity.Record{
		Name: "carrot", Category: "vegetable", Quantity: 3, Unit: "piece", Location: entity.LocationFridge,
	})

	require.NoError(t, err)
	assert.True(t, created, "新規レコードはcreated=trueを返すべき")

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "carrot", records[0].Name)
	assert.Equal(t, 3, records[0].Quantity)
}

func TestRecordPostgres_Upsert_UpdatesExistingByName(t *testing.T) {
	repo := NewRecordPostgres(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entity.Record{Name: "milk", Category: "dairy", Quantity: 1, Unit: "bottle", Location: entity.LocationFridge})
	require.NoError(t, err)

	created, err := repo.Upsert(ctx, &entity.Record{Name: "milk", Category: "dairy", Quantity: 2, Unit: "bottle", Location: entity.LocationFridge})
	require.NoError(t, err)
	assert.False(t, created, "既存レコードはcreated=falseを返すべき")

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1, "品目名キーのupsertでレコードが増えてはならない")
	assert.Equal(t, 2, records[0].Quantity, "数量は上書きされるべき")
}

func TestRecordPostgres_List_OrderedByName(t *testing.T) {
	repo := NewRecordPostgres(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"onion", "carrot", "milk"} {
		_, err := repo.Upsert(ctx, &entity.Record{Name: name, Quantity: 1})
		require.NoError(t, err)
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "carrot", records[0].Name)
	assert.Equal(t, "milk", records[1].Name)
	assert.Equal(t, "onion", records[2].Name)
}

func TestRecordPostgres_List_Empty(t *testing.T) {
	repo := NewRecordPostgres(setupTestDB(t))

	records, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}
