package usecase

import (
	"context"
	"errors"
	"testing"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/inventory/domain/entity"
)

// mockRepository はRepositoryの関数フィールド差し替え式モックです。
type mockRepository struct {
	upsertFunc func(ctx context.Context, rec *entity.Record) (bool, error)
	listFunc   func(ctx context.Context) ([]entity.Record, error)
}

func (m *mockRepository) Upsert(ctx context.Context, rec *entity.Record) (bool, error) {
	return m.upsertFunc(ctx, rec)
}

func (m *mockRepository) List(ctx context.Context) ([]entity.Record, error) {
	return m.listFunc(ctx)
}

// TestAggregate_LocationsAndSummary は保管場所の決定と場所別集計を検証します。
func TestAggregate_LocationsAndSummary(t *testing.T) {
	t.Parallel()

	var upserted []*entity.Record
	repo := &mockRepository{
		upsertFunc: func(_ context.Context, rec *entity.Record) (bool, error) {
			upserted = append(upserted, rec)
			return true, nil
		},
		listFunc: func(_ context.Context) ([]entity.Record, error) {
			out := make([]entity.Record, 0, len(upserted))
			for _, r := range upserted {
				out = append(out, *r)
			}
			return out, nil
		},
	}
	a := NewAggregator(repo)

	items := []analysisentity.FusedItem{
		{Name: "chicken", Category: "meat", Quantity: 1, Unit: "pack"},
		{Name: "onion", Category: "vegetable", Quantity: 3, Unit: "piece"},
		{Name: "spinach", Category: "vegetable", Quantity: 1, Unit: "bunch"},
		{Name: "shrimp", Category: "fish", Quantity: 1, Unit: "pack", Packaging: "frozen"},
	}

	summary, changes, warnings, err := a.Aggregate(context.Background(), items)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if summary.Fridge != 2 || summary.Pantry != 1 || summary.Freezer != 1 {
		t.Errorf("summary = %+v, want fridge 2 / pantry 1 / freezer 1", summary)
	}
	if summary.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", summary.TotalItems)
	}
	if len(changes.Added) != 4 || len(changes.Updated) != 0 {
		t.Errorf("changes = %+v", changes)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want 空", warnings)
	}

	locations := map[string]string{}
	for _, rec := range upserted {
		locations[rec.Name] = rec.Location
	}
	if locations["onion"] != entity.LocationPantry {
		t.Errorf("onion location = %q, want pantry", locations["onion"])
	}
	if locations["shrimp"] != entity.LocationFreezer {
		t.Errorf("shrimp location = %q, want freezer", locations["shrimp"])
	}
	if locations["spinach"] != entity.LocationFridge {
		t.Errorf("spinach location = %q, want fridge", locations["spinach"])
	}
}

// TestAggregate_AddedVsUpdated は新規と更新が区別されることを検証します。
func TestAggregate_AddedVsUpdated(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		upsertFunc: func(_ context.Context, rec *entity.Record) (bool, error) {
			return rec.Name == "new item", nil
		},
		listFunc: func(_ context.Context) ([]entity.Record, error) {
			return []entity.Record{{Name: "new item"}, {Name: "old item"}}, nil
		},
	}
	a := NewAggregator(repo)

	_, changes, _, err := a.Aggregate(context.Background(), []analysisentity.FusedItem{
		{Name: "new item"},
		{Name: "old item"},
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(changes.Added) != 1 || changes.Added[0] != "new item" {
		t.Errorf("Added = %v", changes.Added)
	}
	if len(changes.Updated) != 1 || changes.Updated[0] != "old item" {
		t.Errorf("Updated = %v", changes.Updated)
	}
}

// TestAggregate_OverstockWarning はしきい値超過の品目に警告が出ることを検証します。
func TestAggregate_OverstockWarning(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		upsertFunc: func(_ context.Context, _ *entity.Record) (bool, error) { return false, nil },
		listFunc: func(_ context.Context) ([]entity.Record, error) {
			return []entity.Record{
				{Name: "egg", Quantity: 24, Unit: "piece"},
				{Name: "milk", Quantity: 2, Unit: "bottle"},
				{Name: "carrot", Quantity: overstockThreshold, Unit: "piece"}, // ちょうどは警告なし
			}, nil
		},
	}
	a := NewAggregator(repo)

	_, _, warnings, err := a.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0] != "overstock: egg (24 piece)" {
		t.Errorf("warnings = %v", warnings)
	}
}

// TestAggregate_UpsertFailure はストア障害時にエラーと空の集計が返ることを検証します。
func TestAggregate_UpsertFailure(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		upsertFunc: func(_ context.Context, _ *entity.Record) (bool, error) {
			return false, errors.New("connection refused")
		},
	}
	a := NewAggregator(repo)

	summary, changes, warnings, err := a.Aggregate(context.Background(), []analysisentity.FusedItem{{Name: "milk"}})
	if err == nil {
		t.Fatal("Aggregate() error = nil, want error")
	}
	if summary != (entity.Summary{}) {
		t.Errorf("summary = %+v, want ゼロ値", summary)
	}
	if len(changes.Added) != 0 || len(changes.Updated) != 0 || warnings != nil {
		t.Errorf("changes = %+v, warnings = %v", changes, warnings)
	}
}

// TestAggregate_ListFailure はList障害でもエラーが返ることを検証します。
func TestAggregate_ListFailure(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		upsertFunc: func(_ context.Context, _ *entity.Record) (bool, error) { return true, nil },
		listFunc: func(_ context.Context) ([]entity.Record, error) {
			return nil, errors.New("connection reset")
		},
	}
	a := NewAggregator(repo)

	_, _, _, err := a.Aggregate(context.Background(), []analysisentity.FusedItem{{Name: "milk"}})
	if err == nil {
		t.Fatal("Aggregate() error = nil, want error")
	}
}

// TestAggregate_EmptyItems は確定アイテムなしでも空集計が返ることを検証します。
func TestAggregate_EmptyItems(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		upsertFunc: func(_ context.Context, _ *entity.Record) (bool, error) {
			t.Error("空入力でUpsertが呼ばれた")
			return false, nil
		},
		listFunc: func(_ context.Context) ([]entity.Record, error) { return nil, nil },
	}
	a := NewAggregator(repo)

	summary, changes, warnings, err := a.Aggregate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if summary.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", summary.TotalItems)
	}
	if changes.Added == nil || changes.Updated == nil || warnings == nil {
		t.Error("空スライス（nilではない）を返すべき")
	}
}

// TestStorageLocation は保管場所の決定ルールを検証します。
func TestStorageLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item analysisentity.FusedItem
		want string
	}{
		{"frozen packaging wins", analysisentity.FusedItem{Name: "chicken", Category: "meat", Packaging: "frozen pack"}, entity.LocationFreezer},
		{"meat to fridge", analysisentity.FusedItem{Name: "pork", Category: "meat"}, entity.LocationFridge},
		{"dairy to fridge", analysisentity.FusedItem{Name: "milk", Category: "dairy"}, entity.LocationFridge},
		{"pantry staple vegetable", analysisentity.FusedItem{Name: "Potato", Category: "vegetable"}, entity.LocationPantry},
		{"leafy vegetable to fridge", analysisentity.FusedItem{Name: "lettuce", Category: "vegetable"}, entity.LocationFridge},
		{"unknown category defaults to fridge", analysisentity.FusedItem{Name: "soy sauce", Category: "seasoning"}, entity.LocationFridge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := storageLocation(tt.item); got != tt.want {
				t.Errorf("storageLocation(%+v) = %q, want %q", tt.item, got, tt.want)
			}
		})
	}
}
