package adapters

import (
	"context"
	"sort"
	"sync"

	"fridge_backend/internal/feature/inventory/domain/entity"
	"fridge_backend/internal/feature/inventory/usecase"
)

// recordMemory はRepositoryインターフェースのインメモリ実装です。
// データベースなしの開発・テスト用です。ミューテックスで全書き込みを直列化するため、
// 並行パイプライン実行でも品目ごとの更新が失われることはありません。
type recordMemory struct {
	mu      sync.Mutex
	nextID  uint
	records map[string]*entity.Record
}

// recordMemoryがRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.Repository = (*recordMemory)(nil)

// NewRecordMemory はrecordMemoryの新しいインスタンスを生成します。
func NewRecordMemory() *recordMemory {
	return &recordMemory{nextID: 1, records: map[string]*entity.Record{}}
}

// Upsert は品目名をキーにレコードを挿入または更新します。
func (r *recordMemory) Upsert(_ context.Context, rec *entity.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.records[rec.Name]; ok {
		existing.Category = rec.Category
		existing.Quantity = rec.Quantity
		existing.Unit = rec.Unit
		existing.Location = rec.Location
		return false, nil
	}

	stored := *rec
	stored.ID = r.nextID
	r.nextID++
	r.records[rec.Name] = &stored
	return true, nil
}

// List は全在庫レコードを品目名順で返します。
func (r *recordMemory) List(_ context.Context) ([]entity.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
