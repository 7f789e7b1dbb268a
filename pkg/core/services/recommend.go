package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/db"
)

// MatchFinder is the slice of the match scorer the recommendation service
// needs.
type MatchFinder interface {
	FindBestMatch(ctx context.Context, req matching.ShiftRequirements) (*matching.MatchResult, error)
}

// RecommendWorkers validates a recommendation request and delegates the
// ranking to the match scorer.
func RecommendWorkers(ctx context.Context, finder MatchFinder, logger *zap.Logger, req matching.ShiftRequirements) (*matching.MatchResult, error) {
	if req.OrganizationID == "" {
		return nil, db.NewValidationError("organizationId", "is required")
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, db.NewValidationError("startTime", "start and end times are required")
	}
	if !req.End.After(req.Start) {
		return nil, db.NewValidationError("endTime", "must be after startTime")
	}

	logger.Debug("Recommendation requested",
		zap.String("organization_id", req.OrganizationID),
		zap.Time("start", req.Start),
		zap.Time("end", req.End),
		zap.Strings("required_skills", req.RequiredSkills))

	result, err := finder.FindBestMatch(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Recommendation produced",
		zap.String("organization_id", req.OrganizationID),
		zap.Int("recommendations", len(result.Recommendations)))

	return result, nil
}
