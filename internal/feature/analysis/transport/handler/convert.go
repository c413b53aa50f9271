package handler

import (
	"time"

	"fridge_backend/internal/api"
	"fridge_backend/internal/feature/analysis/domain/entity"
	expiryentity "fridge_backend/internal/feature/expiry/domain/entity"
	inventoryentity "fridge_backend/internal/feature/inventory/domain/entity"
	recipesentity "fridge_backend/internal/feature/recipes/domain/entity"
)

// toAnalyzeResponse はドメインの結果オブジェクトをJSONレスポンス型へ変換します。
// スライスはnilではなく空配列として出力されるよう初期化します。
func toAnalyzeResponse(r *entity.Result) api.AnalyzeResponse {
	return api.AnalyzeResponse{
		Success:               r.Success,
		ConfirmedItems:        toFusedItems(r.ConfirmedItems),
		UnidentifiedItems:     toFusedItems(r.UnidentifiedItems),
		ExpiryData:            toExpiryEntries(r.ExpiryData),
		ExpiryAlerts:          orEmpty(r.ExpiryAlerts),
		InventoryStatus:       toInventorySummary(r.InventoryStatus),
		InventoryChanges:      api.InventoryChanges{Added: orEmpty(r.InventoryChanges.Added), Updated: orEmpty(r.InventoryChanges.Updated)},
		InventoryWarnings:     orEmpty(r.InventoryWarnings),
		RecipeSuggestions:     toRecipes(r.RecipeSuggestions),
		Discussion:            toDiscussion(r.Discussion),
		Videos:                toVideos(r.Videos),
		Recommendation:        toRecommendation(r.Recommendation),
		Errors:                orEmpty(r.Errors),
		CurrentStage:          r.CurrentStage,
		ProcessingTimeSeconds: r.ProcessingTimeSeconds,
	}
}

func toFusedItems(items []entity.FusedItem) []api.FusedItem {
	out := make([]api.FusedItem, 0, len(items))
	for _, it := range items {
		var box *api.BoundingBox
		if it.Box != nil {
			box = &api.BoundingBox{YMin: it.Box.YMin, XMin: it.Box.XMin, YMax: it.Box.YMax, XMax: it.Box.XMax}
		}
		out = append(out, api.FusedItem{
			Name:                it.Name,
			Category:            it.Category,
			Quantity:            it.Quantity,
			Unit:                it.Unit,
			Freshness:           it.Freshness,
			Packaging:           it.Packaging,
			Confidence:          it.Confidence,
			BoundingBox:         box,
			ExpiryText:          it.ExpiryText,
			MatchedWithDetector: it.MatchedWithDetector,
		})
	}
	return out
}

func toExpiryEntries(entries []expiryentity.Entry) []api.ExpiryEntry {
	out := make([]api.ExpiryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.ExpiryEntry{
			Item:         e.Item,
			Category:     e.Category,
			Quantity:     e.Quantity,
			PurchaseDate: e.PurchaseDate,
			ExpiryDate:   e.ExpiryDate,
			DaysLeft:     e.DaysLeft,
			Urgency:      string(e.Urgency),
			StorageTip:   e.StorageTip,
		})
	}
	return out
}

func toInventorySummary(s inventoryentity.Summary) api.InventorySummary {
	return api.InventorySummary{
		TotalItems: s.TotalItems,
		Fridge:     s.Fridge,
		Freezer:    s.Freezer,
		Pantry:     s.Pantry,
	}
}

func toRecipes(recipes []recipesentity.Recipe) []api.Recipe {
	out := make([]api.Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, api.Recipe{
			Title:              r.Title,
			Description:        r.Description,
			Ingredients:        orEmpty(r.Ingredients),
			MissingIngredients: orEmpty(r.MissingIngredients),
			CookingTime:        r.CookingTime,
			Difficulty:         r.Difficulty,
			Calories:           r.Calories,
			UsesUrgent:         r.UsesUrgent,
			MatchRate:          r.MatchRate,
		})
	}
	return out
}

func toDiscussion(d *recipesentity.Discussion) *api.Discussion {
	if d == nil {
		return nil
	}
	return &api.Discussion{Method: d.Method, Summary: d.Summary, Ranking: orEmpty(d.Ranking)}
}

func toVideos(videos map[string][]recipesentity.Video) map[string][]api.Video {
	out := make(map[string][]api.Video, len(videos))
	for title, vs := range videos {
		converted := make([]api.Video, 0, len(vs))
		for _, v := range vs {
			converted = append(converted, api.Video{
				Title:     v.Title,
				VideoID:   v.VideoID,
				URL:       v.URL,
				Channel:   v.Channel,
				Thumbnail: v.Thumbnail,
			})
		}
		out[title] = converted
	}
	return out
}

func toRecommendation(r *entity.Recommendation) *api.Recommendation {
	if r == nil {
		return nil
	}
	return &api.Recommendation{
		TotalItems:      r.TotalItems,
		UrgentCount:     r.UrgentCount,
		Within3Count:    r.Within3Count,
		SafeCount:       r.SafeCount,
		PriorityActions: orEmpty(r.PriorityActions),
		TopRecipes:      toRecipes(r.TopRecipes),
		ShoppingList: api.ShoppingList{
			MissingItems:   orEmpty(r.ShoppingList.MissingItems),
			NextPurchaseBy: r.ShoppingList.NextPurchaseBy,
		},
		Tips:                  orEmpty(r.Tips),
		EstimatedWeeklySaving: r.EstimatedWeeklySaving,
		GeneratedAt:           r.GeneratedAt.Format(time.RFC3339),
	}
}

// orEmpty はnilスライスを空スライスに正規化します。JSONでnullではなく[]を返すためです。
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
