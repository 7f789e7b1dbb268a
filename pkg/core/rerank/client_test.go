package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/model"
)

func testHead() []model.Candidate {
	return []model.Candidate{
		{EmployeeID: "w1", MatchScore: 90},
		{EmployeeID: "w2", MatchScore: 80},
	}
}

func testShiftReq() matching.ShiftRequirements {
	return matching.ShiftRequirements{
		OrganizationID: "org-1",
		Start:          time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 1, 20, 17, 0, 0, 0, time.UTC),
	}
}

func TestClient_RerankReordersAndAnnotates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rerankRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "org-1", req.OrganizationID)
		assert.Len(t, req.Candidates, 2)

		json.NewEncoder(w).Encode([]Annotation{
			{ID: "w2", AIScore: 95, Reasoning: "continuity of care"},
			{ID: "w1", AIScore: 82, Reasoning: "longer travel"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, NewMemoryCache(time.Minute, 16), zap.NewNop())

	reranked, err := client.Rerank(context.Background(), testShiftReq(), testHead())
	require.NoError(t, err)

	require.Len(t, reranked, 2)
	assert.Equal(t, "w2", reranked[0].EmployeeID)
	require.NotNil(t, reranked[0].AIScore)
	assert.Equal(t, 95, *reranked[0].AIScore)
	assert.Equal(t, "continuity of care", reranked[0].Reasoning)
	assert.Equal(t, "w1", reranked[1].EmployeeID)
}

func TestClient_EndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, NewMemoryCache(time.Minute, 16), zap.NewNop())

	_, err := client.Rerank(context.Background(), testShiftReq(), testHead())
	assert.Error(t, err)
}

func TestClient_ResponseWithUnknownCandidateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Annotation{
			{ID: "intruder", AIScore: 99},
			{ID: "w1", AIScore: 82},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, NewMemoryCache(time.Minute, 16), zap.NewNop())

	_, err := client.Rerank(context.Background(), testShiftReq(), testHead())
	assert.Error(t, err)
}

func TestClient_ResponseDroppingCandidateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Annotation{{ID: "w1", AIScore: 82}})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, NewMemoryCache(time.Minute, 16), zap.NewNop())

	_, err := client.Rerank(context.Background(), testShiftReq(), testHead())
	assert.Error(t, err)
}

func TestClient_SecondCallServedFromCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]Annotation{
			{ID: "w1", AIScore: 90},
			{ID: "w2", AIScore: 85},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, NewMemoryCache(time.Minute, 16), zap.NewNop())

	_, err := client.Rerank(context.Background(), testShiftReq(), testHead())
	require.NoError(t, err)
	_, err = client.Rerank(context.Background(), testShiftReq(), testHead())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}
