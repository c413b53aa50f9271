// Package adapters はinventoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fridge_backend/internal/feature/inventory/domain/entity"
	"fridge_backend/internal/feature/inventory/usecase"
)

// recordPostgres はRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type recordPostgres struct {
	db *gorm.DB
}

// recordPostgresがRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.Repository = (*recordPostgres)(nil)

// NewRecordPostgres は指定されたgorm.DB接続でrecordPostgresの新しいインスタンスを生成します。
func NewRecordPostgres(db *gorm.DB) *recordPostgres {
	return &recordPostgres{db: db}
}

// Upsert は品目名をキーにレコードを挿入または更新します。
// トランザクション内で実行するため、同一品目への並行書き込みは行ロックで直列化されます。
func (r *recordPostgres) Upsert(ctx context.Context, rec *entity.Record) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Record
		err := tx.Where("name = ?", rec.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(rec).Error
		}
		if err != nil {
			return err
		}

		existing.Category = rec.Category
		existing.Quantity = rec.Quantity
		existing.Unit = rec.Unit
		existing.Location = rec.Location
		return tx.Save(&existing).Error
	})
	return created, err
}

// List は全在庫レコードを品目名順で返します。
func (r *recordPostgres) List(ctx context.Context) ([]entity.Record, error) {
	var records []entity.Record
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
