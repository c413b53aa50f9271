// Package usecase はinventoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/inventory/domain/entity"
)

// overstockThreshold を超える数量の品目には過剰在庫の警告を出します。
const overstockThreshold = 10

// Repository は在庫レコードの永続化層を抽象化します。
// Upsertは品目名をキーに挿入または数量更新を行い、新規作成ならtrueを返します。
// 実装は品目名ごとの書き込みを直列化し、並行実行時の更新消失を防がなければなりません。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Repository interface {
	Upsert(ctx context.Context, rec *entity.Record) (created bool, err error)
	List(ctx context.Context) ([]entity.Record, error)
}

// pantryStaples は野菜・果物のうち常温保存が適切な品目です。
var pantryStaples = map[string]bool{
	"onion": true, "garlic": true, "potato": true, "banana": true,
}

// Aggregator は解析結果を在庫ストアへ反映し、集計を返します。
type Aggregator struct {
	repo Repository
}

// NewAggregator はAggregatorの新しいインスタンスを生成します。
func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Aggregate は確定アイテムを在庫へupsertし、保管場所別の集計・変化・警告を返します。
// アイテムが空の場合も空の集計を返し、エラーにはなりません。
func (a *Aggregator) Aggregate(ctx context.Context, items []analysisentity.FusedItem) (entity.Summary, entity.Changes, []string, error) {
	summary := entity.Summary{}
	changes := entity.Changes{Added: []string{}, Updated: []string{}}

	for _, item := range items {
		location := storageLocation(item)
		switch location {
		case entity.LocationFreezer:
			summary.Freezer++
		case entity.LocationPantry:
			summary.Pantry++
		default:
			summary.Fridge++
		}

		created, err := a.repo.Upsert(ctx, &entity.Record{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Location: location,
		})
		if err != nil {
			return entity.Summary{}, entity.Changes{}, nil, fmt.Errorf("failed to upsert %q: %w", item.Name, err)
		}
		if created {
			changes.Added = append(changes.Added, item.Name)
		} else {
			changes.Updated = append(changes.Updated, item.Name)
		}
	}

	records, err := a.repo.List(ctx)
	if err != nil {
		return entity.Summary{}, entity.Changes{}, nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	summary.TotalItems = len(records)

	warnings := []string{}
	for _, rec := range records {
		if rec.Quantity > overstockThreshold {
			warnings = append(warnings, fmt.Sprintf("overstock: %s (%d %s)", rec.Name, rec.Quantity, rec.Unit))
		}
	}

	return summary, changes, warnings, nil
}

// List は現在の在庫レコードを返します。
func (a *Aggregator) List(ctx context.Context) ([]entity.Record, error) {
	return a.repo.List(ctx)
}

// storageLocation はカテゴリ・包装・品目名から推奨保管場所を決定します。
func storageLocation(item analysisentity.FusedItem) string {
	if strings.Contains(strings.ToLower(item.Packaging), "frozen") {
		return entity.LocationFreezer
	}
	switch strings.ToLower(item.Category) {
	case "meat", "fish", "dairy":
		return entity.LocationFridge
	case "vegetable", "fruit":
		if pantryStaples[strings.ToLower(item.Name)] {
			return entity.LocationPantry
		}
		return entity.LocationFridge
	}
	return entity.LocationFridge
}
