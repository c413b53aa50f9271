package usecase

import (
	"testing"
	"time"

	analysisentity "fridge_backend/internal/feature/analysis/domain/entity"
	"fridge_backend/internal/feature/expiry/domain/entity"
)

var fixedNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func fixedClassifier() *classifier {
	return NewClassifierWithClock(func() time.Time { return fixedNow })
}

// TestClassify_KnownItem は既知の食材がテーブルの保存日数で判定されることを検証します。
func TestClassify_KnownItem(t *testing.T) {
	t.Parallel()

	entries, _ := fixedClassifier().Classify([]analysisentity.FusedItem{
		{Name: "carrot", Category: "vegetable", Quantity: 3, Packaging: "none"},
	})

	if len(entries) != 1 {
		t.Fatalf("entries数 = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.DaysLeft != 14 {
		t.Errorf("DaysLeft = %d, want 14", e.DaysLeft)
	}
	if e.Urgency != entity.UrgencySafe {
		t.Errorf("Urgency = %q, want %q", e.Urgency, entity.UrgencySafe)
	}
	if e.PurchaseDate != "2026-08-29" {
		t.Errorf("PurchaseDate = %q, want %q", e.PurchaseDate, "2026-08-29")
	}
	if e.ExpiryDate != "2026-09-12" {
		t.Errorf("ExpiryDate = %q, want %q", e.ExpiryDate, "2026-09-12")
	}
	if e.StorageTip != "keep in the fridge" {
		t.Errorf("StorageTip = %q", e.StorageTip)
	}
}

// TestClassify_UnknownItemDefaults は未知の食材にデフォルト7日が適用されることを検証します。
func TestClassify_UnknownItemDefaults(t *testing.T) {
	t.Parallel()

	entries, _ := fixedClassifier().Classify([]analysisentity.FusedItem{
		{Name: "dragon fruit jam"},
	})

	if entries[0].DaysLeft != defaultShelfLifeDays {
		t.Errorf("DaysLeft = %d, want %d", entries[0].DaysLeft, defaultShelfLifeDays)
	}
}

// TestClassify_PartialMatch は部分一致でテーブルが引けることを検証します。
func TestClassify_PartialMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		item     string
		wantDays int
	}{
		{"item contains table key", "fresh chicken breast", 2},
		{"case insensitive", "Chicken", 2},
		{"cherry tomato maps to tomato", "cherry tomato", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries, _ := fixedClassifier().Classify([]analysisentity.FusedItem{{Name: tt.item}})
			if entries[0].DaysLeft != tt.wantDays {
				t.Errorf("DaysLeft(%q) = %d, want %d", tt.item, entries[0].DaysLeft, tt.wantDays)
			}
		})
	}
}

// TestClassify_OpenedPackagingHalvesShelfLife は開封済みで保存日数が半減することを検証します。
func TestClassify_OpenedPackagingHalvesShelfLife(t *testing.T) {
	t.Parallel()

	entries, _ := fixedClassifier().Classify([]analysisentity.FusedItem{
		{Name: "milk", Packaging: "opened"},
		{Name: "milk", Packaging: "sealed"},
		{Name: "chicken", Packaging: "opened"}, // 2日の半分でも最低1日
	})

	if entries[0].DaysLeft != 3 {
		t.Errorf("opened milk DaysLeft = %d, want 3", entries[0].DaysLeft)
	}
	if entries[1].DaysLeft != 7 {
		t.Errorf("sealed milk DaysLeft = %d, want 7", entries[1].DaysLeft)
	}
	if entries[2].DaysLeft != 1 {
		t.Errorf("opened chicken DaysLeft = %d, want 1", entries[2].DaysLeft)
	}
}

// TestClassify_Alerts は緊急度に応じた警告メッセージを検証します。
func TestClassify_Alerts(t *testing.T) {
	t.Parallel()

	_, alerts := fixedClassifier().Classify([]analysisentity.FusedItem{
		{Name: "chicken"}, // 2日: within_3_days
		{Name: "milk"},    // 7日: within_week
		{Name: "garlic"},  // 60日: safe、警告なし
		{Name: "fish"},    // 2日: within_3_days
	})

	want := []string{
		"use within 3 days: chicken",
		"use within a week: milk",
		"use within 3 days: fish",
	}
	if len(alerts) != len(want) {
		t.Fatalf("alerts = %v, want %v", alerts, want)
	}
	for i := range want {
		if alerts[i] != want[i] {
			t.Errorf("alerts[%d] = %q, want %q", i, alerts[i], want[i])
		}
	}
}

// TestClassify_EmptyInput は入力が空の場合に空スライスを返すことを検証します。
func TestClassify_EmptyInput(t *testing.T) {
	t.Parallel()

	entries, alerts := fixedClassifier().Classify(nil)

	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %v, want 空スライス", entries)
	}
	if alerts == nil || len(alerts) != 0 {
		t.Errorf("alerts = %v, want 空スライス", alerts)
	}
}

// TestUrgencyFor は残日数と緊急度レベルの境界を検証します。
func TestUrgencyFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		daysLeft int
		want     entity.Urgency
	}{
		{-1, entity.UrgencyExpired},
		{0, entity.UrgencyImmediate},
		{1, entity.UrgencyWithin3},
		{3, entity.UrgencyWithin3},
		{4, entity.UrgencyWithinWeek},
		{7, entity.UrgencyWithinWeek},
		{8, entity.UrgencySafe},
		{30, entity.UrgencySafe},
	}

	for _, tt := range tests {
		if got := urgencyFor(tt.daysLeft); got != tt.want {
			t.Errorf("urgencyFor(%d) = %q, want %q", tt.daysLeft, got, tt.want)
		}
	}
}
