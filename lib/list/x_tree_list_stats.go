package list

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeListStatsName = "xlist/xtl"
)

// treeListStats publishes per-instance operation metrics through the global
// otel meter provider. All record methods are safe on a nil receiver, so the
// call sites never branch on whether stats were enabled.
type treeListStats struct {
	elementCount  metric.Int64UpDownCounter
	insertedCount metric.Int64Counter
	removedCount  metric.Int64Counter
	mergedCount   metric.Int64Counter
}

func (stats *treeListStats) RecordElementCount(delta int64) {
	if stats == nil {
		return
	}
	stats.elementCount.Add(context.Background(), delta)
}

func (stats *treeListStats) IncreaseInsertedCount() {
	if stats == nil {
		return
	}
	stats.insertedCount.Add(context.Background(), 1)
}

func (stats *treeListStats) IncreaseRemovedCount(count int64) {
	if stats == nil {
		return
	}
	stats.removedCount.Add(context.Background(), count)
}

func (stats *treeListStats) IncreaseMergedCount() {
	if stats == nil {
		return
	}
	stats.mergedCount.Add(context.Background(), 1)
}

func newTreeListStats(name string) *treeListStats {
	meterName := fmt.Sprintf("%s/%s", TreeListStatsName, name)
	return &treeListStats{
		elementCount: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"xtl.element.count",
				metric.WithDescription("The number of elements held by the tree list."),
			),
		),
		insertedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xtl.inserted.count",
				metric.WithDescription("The number of single element insertions."),
			),
		),
		removedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xtl.removed.count",
				metric.WithDescription("The number of elements removed, range removals included."),
			),
		),
		mergedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xtl.merged.count",
				metric.WithDescription("The number of bulk merge operations."),
			),
		),
	}
}
