package store

import (
	"context"
	"database/sql"
	"sort"

	"github.com/erazemk/stockroom/internal/model"
)

// ComputeStats counts low-stock items and groups items by their raw activity
// value. Items without an activity are left out of the grouping. Activities
// are sorted by count, highest first; equal counts keep the order in which
// the activity was first seen.
func ComputeStats(items []model.Item) model.Stats {
	stats := model.Stats{
		TotalItems: len(items),
		Activities: []model.ActivityCount{},
	}

	index := make(map[string]int)
	for _, item := range items {
		if item.IsLowStock() {
			stats.LowStockCount++
		}
		if item.Activity == "" {
			continue
		}
		if i, ok := index[item.Activity]; ok {
			stats.Activities[i].Count++
			continue
		}
		index[item.Activity] = len(stats.Activities)
		stats.Activities = append(stats.Activities, model.ActivityCount{Name: item.Activity, Count: 1})
	}

	sort.SliceStable(stats.Activities, func(i, j int) bool {
		return stats.Activities[i].Count > stats.Activities[j].Count
	})
	return stats
}

// GetStats computes stats over every stored item.
func GetStats(ctx context.Context, db *sql.DB) (model.Stats, error) {
	items, err := ListItems(ctx, db)
	if err != nil {
		return model.Stats{}, err
	}
	return ComputeStats(items), nil
}
