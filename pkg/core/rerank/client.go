package rerank

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/model"
)

// Client calls an external advisory re-ranking collaborator over HTTP. The
// collaborator may reorder and annotate the candidates it is given but never
// changes the set; on any failure the caller keeps the heuristic order, so
// this client is never required for correctness.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cache      RecommendationCache
	logger     *zap.Logger
}

// NewClient creates a re-ranking client. cache must be provided by the
// caller; its lifecycle belongs to the process constructing the scheduler
// service.
func NewClient(endpoint string, timeout time.Duration, cache RecommendationCache, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

type rerankRequest struct {
	OrganizationID string            `json:"organizationId"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	RequiredSkills []string          `json:"requiredSkills,omitempty"`
	Candidates     []rerankCandidate `json:"candidates"`
}

type rerankCandidate struct {
	ID         string   `json:"id"`
	Skills     []string `json:"skills,omitempty"`
	SkillScore int      `json:"skillScore"`
	MatchScore int      `json:"matchScore"`
}

// Rerank asks the collaborator to reorder the head of the ranked list,
// consulting the cache first. Implements matching.Reranker.
func (c *Client) Rerank(ctx context.Context, req matching.ShiftRequirements, head []model.Candidate) ([]model.Candidate, error) {
	key := cacheKey(req, head)

	annotations, ok := c.cache.Get(ctx, key)
	if !ok {
		var err error
		annotations, err = c.call(ctx, req, head)
		if err != nil {
			return nil, err
		}
		c.cache.Store(ctx, key, annotations)
	}

	return applyAnnotations(head, annotations)
}

func (c *Client) call(ctx context.Context, req matching.ShiftRequirements, head []model.Candidate) ([]Annotation, error) {
	payload := rerankRequest{
		OrganizationID: req.OrganizationID,
		Start:          req.Start,
		End:            req.End,
		RequiredSkills: req.RequiredSkills,
		Candidates:     make([]rerankCandidate, 0, len(head)),
	}
	for _, candidate := range head {
		payload.Candidates = append(payload.Candidates, rerankCandidate{
			ID:         candidate.EmployeeID,
			Skills:     candidate.Skills,
			SkillScore: candidate.SkillScore,
			MatchScore: candidate.MatchScore,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rerank request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rerank request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rerank endpoint returned status %d", resp.StatusCode)
	}

	var annotations []Annotation
	if err := json.NewDecoder(resp.Body).Decode(&annotations); err != nil {
		return nil, fmt.Errorf("failed to decode rerank response: %w", err)
	}

	c.logger.Debug("Re-ranker responded", zap.Int("annotations", len(annotations)))
	return annotations, nil
}

// applyAnnotations reorders the head to the collaborator's order and attaches
// its score and reasoning to each candidate. A response that does not cover
// exactly the offered candidates is rejected.
func applyAnnotations(head []model.Candidate, annotations []Annotation) ([]model.Candidate, error) {
	if len(annotations) != len(head) {
		return nil, fmt.Errorf("rerank response has %d entries, expected %d", len(annotations), len(head))
	}

	byID := make(map[string]model.Candidate, len(head))
	for _, candidate := range head {
		byID[candidate.EmployeeID] = candidate
	}

	reordered := make([]model.Candidate, 0, len(annotations))
	for _, annotation := range annotations {
		candidate, ok := byID[annotation.ID]
		if !ok {
			return nil, fmt.Errorf("rerank response references unknown candidate %q", annotation.ID)
		}
		delete(byID, annotation.ID)

		aiScore := annotation.AIScore
		candidate.AIScore = &aiScore
		candidate.Reasoning = annotation.Reasoning
		reordered = append(reordered, candidate)
	}

	return reordered, nil
}

// cacheKey fingerprints the shift context and the offered candidate set.
func cacheKey(req matching.ShiftRequirements, head []model.Candidate) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|", req.OrganizationID, req.Start.Unix(), req.End.Unix())
	for _, skill := range req.RequiredSkills {
		fmt.Fprintf(h, "%s,", skill)
	}
	h.Write([]byte("|"))
	for _, candidate := range head {
		fmt.Fprintf(h, "%s:%d,", candidate.EmployeeID, candidate.MatchScore)
	}
	return hex.EncodeToString(h.Sum(nil))
}
