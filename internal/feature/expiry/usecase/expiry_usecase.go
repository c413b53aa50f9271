// Package usecase はexpiryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"fmt"
	"strings"
	"time"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/expiry/domain/entity"
)

// defaultShelfLife は未知の食材に適用するデフォルトの保存日数です。
const defaultShelfLifeDays = 7

// shelfLife は食材1種の基準保存日数と推奨保管場所です。
type shelfLife struct {
	baseDays int
	storage  string
}

// shelfLifeTable は食材名から保存日数を引く静的テーブルです。
// 購入日は解析日とみなします。
var shelfLifeTable = map[string]shelfLife{
	"carrot":      {14, "fridge"},
	"onion":       {30, "pantry"},
	"potato":      {30, "pantry"},
	"spinach":     {5, "fridge"},
	"lettuce":     {5, "fridge"},
	"cabbage":     {7, "fridge"},
	"milk":        {7, "fridge"},
	"tofu":        {3, "fridge"},
	"egg":         {21, "fridge"},
	"chicken":     {2, "fridge"},
	"pork":        {3, "fridge"},
	"beef":        {3, "fridge"},
	"fish":        {2, "fridge"},
	"apple":       {14, "fridge"},
	"banana":      {5, "pantry"},
	"tomato":      {7, "pantry"},
	"pepper":      {7, "fridge"},
	"garlic":      {60, "pantry"},
	"ginger":      {14, "fridge"},
	"green onion": {7, "fridge"},
	"cheese":      {14, "fridge"},
	"yogurt":      {10, "fridge"},
	"butter":      {30, "fridge"},
	"mushroom":    {5, "fridge"},
	"cucumber":    {7, "fridge"},
}

// classifier は消費期限の判定ロジックを提供します。
type classifier struct {
	now func() time.Time
}

// NewClassifier はclassifierの新しいインスタンスを生成します。
func NewClassifier() *classifier {
	return &classifier{now: time.Now}
}

// NewClassifierWithClock は時刻取得関数を差し替えたclassifierを生成します（テスト用）。
func NewClassifierWithClock(now func() time.Time) *classifier {
	return &classifier{now: now}
}

// Classify は各アイテムの消費期限エントリと警告リストを返します。
// 入力が空なら両方とも空を返します。
func (c *classifier) Classify(items []analysisentity.FusedItem) ([]entity.Entry, []string) {
	if len(items) == 0 {
		return []entity.Entry{}, []string{}
	}

	now := c.now()
	entries := make([]entity.Entry, 0, len(items))
	alerts := []string{}

	for _, item := range items {
		life := lookupShelfLife(item.Name)
		days := adjustForPackaging(item.Packaging, life.baseDays)

		expiryDate := now.AddDate(0, 0, days)
		daysLeft := days
		urgency := urgencyFor(daysLeft)

		entries = append(entries, entity.Entry{
			Item:         item.Name,
			Category:     item.Category,
			Quantity:     item.Quantity,
			PurchaseDate: now.Format("2006-01-02"),
			ExpiryDate:   expiryDate.Format("2006-01-02"),
			DaysLeft:     daysLeft,
			Urgency:      urgency,
			StorageTip:   fmt.Sprintf("keep in the %s", life.storage),
		})

		switch urgency {
		case entity.UrgencyExpired, entity.UrgencyImmediate:
			alerts = append(alerts, fmt.Sprintf("consume today: %s", item.Name))
		case entity.UrgencyWithin3:
			alerts = append(alerts, fmt.Sprintf("use within 3 days: %s", item.Name))
		case entity.UrgencyWithinWeek:
			alerts = append(alerts, fmt.Sprintf("use within a week: %s", item.Name))
		}
	}

	return entries, alerts
}

// lookupShelfLife は完全一致、次に部分一致（双方向）でテーブルを引きます。
// 見つからない場合は冷蔵7日のデフォルトを返します。
func lookupShelfLife(name string) shelfLife {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return shelfLife{baseDays: defaultShelfLifeDays, storage: "fridge"}
	}
	if life, ok := shelfLifeTable[key]; ok {
		return life
	}
	for tableKey, life := range shelfLifeTable {
		if strings.Contains(key, tableKey) || strings.Contains(tableKey, key) {
			return life
		}
	}
	return shelfLife{baseDays: defaultShelfLifeDays, storage: "fridge"}
}

// adjustForPackaging は開封済みの食材の保存日数を半減します（最低1日）。
func adjustForPackaging(packaging string, baseDays int) int {
	if strings.Contains(strings.ToLower(packaging), "opened") {
		return max(1, baseDays/2)
	}
	return baseDays
}

// urgencyFor は残日数を緊急度レベルへ変換します。
func urgencyFor(daysLeft int) entity.Urgency {
	switch {
	case daysLeft < 0:
		return entity.UrgencyExpired
	case daysLeft == 0:
		return entity.UrgencyImmediate
	case daysLeft <= 3:
		return entity.UrgencyWithin3
	case daysLeft <= 7:
		return entity.UrgencyWithinWeek
	default:
		return entity.UrgencySafe
	}
}
