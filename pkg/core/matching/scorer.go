package matching

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/model"
	"github.com/carebridge/scheduler/pkg/db"
)

const (
	// Composite match score weights. They sum to 1.0 so the blended score
	// stays in [0, 100].
	WeightSkill        = 0.4
	WeightAvailability = 0.3
	WeightDistance     = 0.3

	// FullAvailabilityScore is the availability component for every surviving
	// candidate. Unavailable workers are dropped before scoring, so by
	// construction anyone who is scored is fully available.
	FullAvailabilityScore = 100

	// RerankHeadSize is how many top-ranked candidates are offered to the
	// advisory re-ranker.
	RerankHeadSize = 10
)

// ShiftRequirements describes the shift a recommendation is requested for.
type ShiftRequirements struct {
	OrganizationID string
	Start          time.Time
	End            time.Time
	RequiredSkills []string
	ClientEmail    string
	ClientLocation *model.GeoPoint
}

// MatchResult is the ranked outcome of a recommendation request.
type MatchResult struct {
	Success         bool
	Recommendations []model.Candidate
}

// AvailabilityChecker is the slice of the checker the scorer needs.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, ref model.WorkerRef, start, end time.Time) AvailabilityResult
}

// Reranker is an advisory collaborator that may reorder and annotate the
// top-ranked candidates. It must not change the candidate set, and any
// failure leaves the heuristic order untouched.
type Reranker interface {
	Rerank(ctx context.Context, req ShiftRequirements, head []model.Candidate) ([]model.Candidate, error)
}

// WorkerLister lists the active workforce of an organization.
type WorkerLister interface {
	ListActiveWorkers(ctx context.Context, orgID string) ([]model.Worker, error)
}

// ClientResolver resolves client records by email.
type ClientResolver interface {
	GetClientByEmail(ctx context.Context, email string) (*model.Client, error)
}

// Scorer composes skill coverage, availability, and proximity into one
// ranked candidate list for a shift.
type Scorer struct {
	workers  WorkerLister
	clients  ClientResolver
	checker  AvailabilityChecker
	reranker Reranker // nil when no collaborator is configured
	logger   *zap.Logger
}

// NewScorer creates a match scorer. reranker may be nil.
func NewScorer(workers WorkerLister, clients ClientResolver, checker AvailabilityChecker, reranker Reranker, logger *zap.Logger) *Scorer {
	return &Scorer{
		workers:  workers,
		clients:  clients,
		checker:  checker,
		reranker: reranker,
		logger:   logger,
	}
}

// FindBestMatch ranks the organization's active workers by fitness for the
// requested shift. Unavailable workers are discarded entirely; they never
// appear in the output, not even with a zero score. An organization with no
// active workers yields an empty successful result, not an error.
func (s *Scorer) FindBestMatch(ctx context.Context, req ShiftRequirements) (*MatchResult, error) {
	workers, err := s.workers.ListActiveWorkers(ctx, req.OrganizationID)
	if err != nil {
		return nil, db.NewDependencyError("worker directory", err)
	}

	s.logger.Debug("Scoring candidates",
		zap.String("organization_id", req.OrganizationID),
		zap.Int("workers", len(workers)))

	clientLocation := s.resolveClientLocation(ctx, req)

	candidates := make([]model.Candidate, 0, len(workers))
	for _, worker := range workers {
		ref := model.WorkerRef{ID: worker.ID, Email: worker.Email}

		availability := s.checker.CheckAvailability(ctx, ref, req.Start, req.End)
		if !availability.IsAvailable {
			s.logger.Debug("Worker unavailable, dropped from ranking",
				zap.String("worker_id", worker.ID),
				zap.Int("conflicts", len(availability.Conflicts)))
			continue
		}

		skillScore := SkillScore(worker.Skills, req.RequiredSkills)
		distanceKm, distanceScore := ProximityScore(worker.Location, clientLocation)

		matchScore := int(math.Round(
			float64(skillScore)*WeightSkill +
				float64(FullAvailabilityScore)*WeightAvailability +
				float64(distanceScore)*WeightDistance))

		candidates = append(candidates, model.Candidate{
			EmployeeID:        worker.ID,
			Email:             worker.Email,
			FirstName:         worker.FirstName,
			LastName:          worker.LastName,
			Skills:            worker.Skills,
			SkillScore:        skillScore,
			AvailabilityScore: FullAvailabilityScore,
			DistanceScore:     distanceScore,
			DistanceKm:        distanceKm,
			MatchScore:        matchScore,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	candidates = s.applyRerank(ctx, req, candidates)

	return &MatchResult{Success: true, Recommendations: candidates}, nil
}

// resolveClientLocation prefers an inline location and falls back to the
// client directory. An unknown client simply means no location; proximity
// scoring treats that optimistically.
func (s *Scorer) resolveClientLocation(ctx context.Context, req ShiftRequirements) *model.GeoPoint {
	if req.ClientLocation != nil {
		return req.ClientLocation
	}
	if req.ClientEmail == "" {
		return nil
	}

	client, err := s.clients.GetClientByEmail(ctx, req.ClientEmail)
	if err != nil {
		s.logger.Warn("Client lookup failed, scoring without client location",
			zap.String("client_email", req.ClientEmail),
			zap.Error(err))
		return nil
	}
	if client == nil {
		return nil
	}
	return client.Location
}

// applyRerank hands the top-ranked head to the advisory collaborator. The
// remainder is appended unchanged after the re-ranked head. A failing or
// misbehaving collaborator (one that changes the candidate set) is ignored
// and the heuristic order stands.
func (s *Scorer) applyRerank(ctx context.Context, req ShiftRequirements, candidates []model.Candidate) []model.Candidate {
	if s.reranker == nil || len(candidates) == 0 {
		return candidates
	}

	headSize := min(RerankHeadSize, len(candidates))
	head := candidates[:headSize]

	reranked, err := s.reranker.Rerank(ctx, req, head)
	if err != nil {
		s.logger.Warn("Re-ranker failed, keeping heuristic order", zap.Error(err))
		return candidates
	}
	if !sameCandidateSet(head, reranked) {
		s.logger.Warn("Re-ranker changed the candidate set, keeping heuristic order")
		return candidates
	}

	return append(reranked, candidates[headSize:]...)
}

func sameCandidateSet(a, b []model.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]int, len(a))
	for _, c := range a {
		ids[c.EmployeeID]++
	}
	for _, c := range b {
		ids[c.EmployeeID]--
		if ids[c.EmployeeID] < 0 {
			return false
		}
	}
	return true
}
