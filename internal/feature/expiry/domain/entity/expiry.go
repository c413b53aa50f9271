// Package entity はexpiryフィーチャーのドメインモデルを定義します。
package entity

// Urgency は消費期限の緊急度レベルです。
type Urgency string

const (
	UrgencyExpired    Urgency = "expired"
	UrgencyImmediate  Urgency = "immediate"
	UrgencyWithin3    Urgency = "within_3_days"
	UrgencyWithinWeek Urgency = "within_week"
	UrgencySafe       Urgency = "safe"
)

// Entry は1つの食材に対する消費期限の判定結果です。
type Entry struct {
	Item         string
	Category     string
	Quantity     int
	PurchaseDate string // YYYY-MM-DD（購入日は解析日とみなす）
	ExpiryDate   string // YYYY-MM-DD
	DaysLeft     int
	Urgency      Urgency
	StorageTip   string
}
