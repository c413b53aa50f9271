// Package entity はinventoryフィーチャーのドメインモデルを定義します。
package entity

import "time"

// 保管場所の分類です。
const (
	LocationFridge  = "fridge"
	LocationFreezer = "freezer"
	LocationPantry  = "pantry"
)

// Record は在庫ストアに永続化される1品目のレコードです。
// 品目名をキーとして解析のたびに数量が上書きされます。
type Record struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;size:255;not null"`
	Category string `gorm:"size:64"`
	Quantity int    `gorm:"not null"`
	Unit     string `gorm:"size:32"`
	Location string `gorm:"size:32"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary は在庫全体の集計結果です。
type Summary struct {
	TotalItems int
	Fridge     int
	Freezer    int
	Pantry     int
}

// Changes は今回の解析で生じた在庫の変化です。
type Changes struct {
	Added   []string
	Updated []string
}
