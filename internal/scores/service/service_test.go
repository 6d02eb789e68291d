package service

import (
	"strings"
	"testing"

	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/internal/scores/transport"
	"oppscore_backend/platform/apperr"
	"oppscore_backend/platform/logger"
)

func testService(rows []domain.ScoreRecord) *Service {
	return New(domain.BuildIndex(rows), logger.New("development"))
}

func loadedService() *Service {
	return testService([]domain.ScoreRecord{
		{State: "California", CorpType: "c-corp", EmpSize: "10-19", Score: 87.5, Confidence: "high", Establishments: 12000, Employees: 180000, AvgSalaryThousands: 95.256},
		{State: "Texas", CorpType: "c-corp", EmpSize: "10-19", Score: 74.2, Confidence: "high", Establishments: 9800, Employees: 150000, AvgSalaryThousands: 78.1},
	})
}

func TestGetScoreFound(t *testing.T) {
	svc := loadedService()

	resp, err := svc.GetScore(transport.GetScoreRequest{State: "california", CorpType: "C-Corp", EmpSize: "10-19"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Score != 87.5 {
		t.Fatalf("expected score 87.5, got %v", resp.Score)
	}
	if !strings.HasPrefix(resp.Interpretation, "Excellent") {
		t.Fatalf("unexpected interpretation: %q", resp.Interpretation)
	}
	if resp.Details.AvgSalaryThousands != 95.26 {
		t.Fatalf("expected salary rounded to 95.26, got %v", resp.Details.AvgSalaryThousands)
	}
	if resp.Methodology.ScoreRange == "" {
		t.Fatal("methodology must be populated")
	}
}

func TestGetScoreNotFoundCarriesSuggestions(t *testing.T) {
	svc := loadedService()

	_, err := svc.GetScore(transport.GetScoreRequest{State: "Atlantis", CorpType: "c-corp", EmpSize: "10-19"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}

	details, ok := err.(*apperr.Error).Details.(transport.NotFoundDetails)
	if !ok {
		t.Fatalf("expected NotFoundDetails, got %T", err.(*apperr.Error).Details)
	}
	if len(details.Suggestions) != 1 || !strings.Contains(details.Suggestions[0], "Invalid state 'Atlantis'") {
		t.Fatalf("unexpected suggestions: %v", details.Suggestions)
	}
	if details.Provided.State != "Atlantis" {
		t.Fatalf("provided inputs not echoed: %+v", details.Provided)
	}
}

func TestGetScoreKnownFieldsMissingCombination(t *testing.T) {
	svc := testService([]domain.ScoreRecord{
		{State: "California", CorpType: "c-corp", EmpSize: "10-19", Score: 80},
		{State: "Texas", CorpType: "s-corp", EmpSize: "1-4", Score: 60},
	})

	_, err := svc.GetScore(transport.GetScoreRequest{State: "Texas", CorpType: "c-corp", EmpSize: "10-19"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	details := err.(*apperr.Error).Details.(transport.NotFoundDetails)
	if len(details.Suggestions) != 1 || !strings.Contains(details.Suggestions[0], "may not exist") {
		t.Fatalf("expected combination hint, got %v", details.Suggestions)
	}
}

func TestAllOperationsUnavailableWhenEmpty(t *testing.T) {
	svc := testService(nil)

	if _, err := svc.GetScore(transport.GetScoreRequest{State: "x", CorpType: "y", EmpSize: "z"}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("GetScore: expected unavailable, got %v", err)
	}
	if _, err := svc.ListStates(); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("ListStates: expected unavailable, got %v", err)
	}
	if _, err := svc.ListCorpTypes(); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("ListCorpTypes: expected unavailable, got %v", err)
	}
	if _, err := svc.ListEmpSizes(); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("ListEmpSizes: expected unavailable, got %v", err)
	}
	if _, err := svc.CompareStates(transport.CompareRequest{States: []string{"x"}, CorpType: "y", EmpSize: "z"}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("CompareStates: expected unavailable, got %v", err)
	}
	if _, err := svc.TopStates(transport.TopStatesRequest{CorpType: "y", EmpSize: "z"}); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("TopStates: expected unavailable, got %v", err)
	}
}

func TestCompareStatesSummaryAndErrors(t *testing.T) {
	svc := loadedService()

	resp, err := svc.CompareStates(transport.CompareRequest{
		States:   []string{"California", "Nowhere", "Texas"},
		CorpType: "c-corp",
		EmpSize:  "10-19",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Comparison.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Comparison.Results))
	}
	if resp.Comparison.BestState == nil || *resp.Comparison.BestState != "California" {
		t.Fatalf("unexpected best state: %v", resp.Comparison.BestState)
	}
	if resp.Comparison.WorstState == nil || *resp.Comparison.WorstState != "Texas" {
		t.Fatalf("unexpected worst state: %v", resp.Comparison.WorstState)
	}
	if len(resp.Errors) != 1 || resp.Errors[0] != "Nowhere" {
		t.Fatalf("unexpected errors: %v", resp.Errors)
	}
	if resp.Summary != "Compared 2 states for c-corp businesses with 10-19 employees" {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}
}

func TestCompareStatesEmptyList(t *testing.T) {
	svc := loadedService()

	resp, err := svc.CompareStates(transport.CompareRequest{CorpType: "c-corp", EmpSize: "10-19"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Comparison.Results) != 0 {
		t.Fatalf("expected no results, got %v", resp.Comparison.Results)
	}
	if resp.Comparison.BestState != nil || resp.Comparison.WorstState != nil {
		t.Fatal("best/worst must be null for empty comparison")
	}
	if resp.Errors == nil || len(resp.Errors) != 0 {
		t.Fatalf("errors must be an empty list, got %v", resp.Errors)
	}
}

func TestTopStatesDefaultN(t *testing.T) {
	svc := loadedService()

	resp, err := svc.TopStates(transport.TopStatesRequest{CorpType: "c-corp", EmpSize: "10-19"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Query.Requested != transport.DefaultTopN {
		t.Fatalf("expected default n of %d, got %d", transport.DefaultTopN, resp.Query.Requested)
	}
	if resp.TotalAvailable != 2 || len(resp.TopStates) != 2 {
		t.Fatalf("unexpected ranking: %+v", resp)
	}
}

func TestTopStatesExplicitZero(t *testing.T) {
	svc := loadedService()

	zero := 0
	resp, err := svc.TopStates(transport.TopStatesRequest{CorpType: "c-corp", EmpSize: "10-19", N: &zero})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.TopStates) != 0 {
		t.Fatalf("expected empty list for n=0, got %v", resp.TopStates)
	}
	if resp.TotalAvailable != 2 {
		t.Fatalf("total_available must report the true match count, got %d", resp.TotalAvailable)
	}
}

func TestTopStatesNegativeNRejected(t *testing.T) {
	svc := loadedService()

	negative := -1
	_, err := svc.TopStates(transport.TopStatesRequest{CorpType: "c-corp", EmpSize: "10-19", N: &negative})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
