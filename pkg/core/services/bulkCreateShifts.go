package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
)

// BulkFailure records one rejected item of a bulk request, keyed by its
// position in the input so callers can correlate.
type BulkFailure struct {
	Index int
	Spec  model.ShiftSpec
	Err   error
}

// BulkResult reports the per-item outcome of a bulk creation. Partial
// success is the normal and expected outcome.
type BulkResult struct {
	Created []model.Shift
	Failed  []BulkFailure
}

// BulkCreateShifts runs each spec independently through CreateShift, in
// input order. Items are processed sequentially; a failure in one item never
// aborts the rest, and there is no cross-item transaction. Each item is
// conflict-checked against persisted state at the moment it runs, so earlier
// items in the batch that were persisted are visible to later checks.
func BulkCreateShifts(ctx context.Context, store CreateShiftStore, detector ConflictDetector, logger *zap.Logger, specs []model.ShiftSpec) *BulkResult {
	result := &BulkResult{
		Created: []model.Shift{},
		Failed:  []BulkFailure{},
	}

	logger.Info("Bulk shift creation started", zap.Int("items", len(specs)))

	for i, spec := range specs {
		shift, err := CreateShift(ctx, store, detector, logger, spec)
		if err != nil {
			logger.Debug("Bulk item failed",
				zap.Int("index", i),
				zap.Error(err))
			result.Failed = append(result.Failed, BulkFailure{Index: i, Spec: spec, Err: err})
			continue
		}
		result.Created = append(result.Created, *shift)
	}

	logger.Info("Bulk shift creation finished",
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Failed)))

	return result
}
