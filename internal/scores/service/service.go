// Package service provides the query operations over the score lookup index
// and maps domain outcomes to transport payloads and typed errors.
package service

import (
	"fmt"
	"math"

	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/internal/scores/transport"
	"oppscore_backend/platform/apperr"
	"oppscore_backend/platform/logger"
)

const (
	msgNotLoaded = "Lookup table not loaded. Please ensure the score table export is available."
	msgNoData    = "No data found for the specified combination"

	noteStates   = "Use these exact state names when calling get_opportunity_score"
	noteEmpSizes = "Ranges represent number of employees at establishment"
)

// methodology is constant across all scores; it describes the offline model
// that produced the table.
var methodology = transport.Methodology{
	Source:     "US Census Bureau County Business Patterns (2022)",
	Model:      "Random Forest regression on salary, momentum, and density features",
	ScoreRange: "0-100 (higher = better opportunity)",
}

// Service answers score queries against an immutable lookup index.
type Service struct {
	index *domain.Index
	log   *logger.Logger
}

// New creates a scores service over the given index.
func New(index *domain.Index, log *logger.Logger) *Service {
	return &Service{index: index, log: log}
}

// Index exposes the underlying lookup index for health reporting.
func (s *Service) Index() *domain.Index {
	return s.index
}

// GetScore resolves one exact (state, corp type, emp size) combination.
func (s *Service) GetScore(req transport.GetScoreRequest) (*transport.ScoreResponse, error) {
	result := s.index.Lookup(req.State, req.CorpType, req.EmpSize)

	switch result.Kind {
	case domain.ResultNotLoaded:
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.GetScore")
	case domain.ResultNotFound:
		return nil, apperr.NotFound(msgNoData).WithDetails(transport.NotFoundDetails{
			Suggestions: buildSuggestions(req, result.Hints),
			Provided: transport.ProvidedInputs{
				State:    req.State,
				CorpType: req.CorpType,
				EmpSize:  req.EmpSize,
			},
		})
	}

	record := result.Record
	return &transport.ScoreResponse{
		Score:          record.Score,
		Interpretation: result.Interpretation,
		Confidence:     record.Confidence,
		Details: transport.ScoreDetails{
			State:              record.State,
			CorporationType:    record.CorpType,
			EmployeeSize:       record.EmpSize,
			Establishments:     record.Establishments,
			TotalEmployees:     record.Employees,
			AvgSalaryThousands: round2(record.AvgSalaryThousands),
		},
		Methodology: methodology,
	}, nil
}

// ListStates enumerates the available states.
func (s *Service) ListStates() (*transport.StatesResponse, error) {
	states, ok := s.index.States()
	if !ok {
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.ListStates")
	}
	return &transport.StatesResponse{
		Count:  len(states),
		States: states,
		Note:   noteStates,
	}, nil
}

// ListCorpTypes enumerates the available corporation types with descriptions.
func (s *Service) ListCorpTypes() (*transport.CorpTypesResponse, error) {
	infos, ok := s.index.CorpTypes()
	if !ok {
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.ListCorpTypes")
	}
	entries := make([]transport.CorpTypeEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, transport.CorpTypeEntry{Code: info.Code, Description: info.Description})
	}
	return &transport.CorpTypesResponse{Count: len(entries), CorpTypes: entries}, nil
}

// ListEmpSizes enumerates the available employee size categories.
func (s *Service) ListEmpSizes() (*transport.EmpSizesResponse, error) {
	sizes, ok := s.index.EmpSizes()
	if !ok {
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.ListEmpSizes")
	}
	return &transport.EmpSizesResponse{
		Count:    len(sizes),
		EmpSizes: sizes,
		Note:     noteEmpSizes,
	}, nil
}

// CompareStates compares scores across states at a fixed profile. Partial
// resolution is an ordinary outcome: unresolved states come back in Errors.
func (s *Service) CompareStates(req transport.CompareRequest) (*transport.CompareResponse, error) {
	cmp := s.index.CompareStates(req.States, req.CorpType, req.EmpSize)
	if !cmp.Loaded {
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.CompareStates")
	}

	results := make([]transport.ComparisonEntry, 0, len(cmp.Results))
	for _, entry := range cmp.Results {
		results = append(results, transport.ComparisonEntry{
			State:          entry.State,
			Score:          entry.Score,
			Confidence:     entry.Confidence,
			Establishments: entry.Establishments,
		})
	}

	return &transport.CompareResponse{
		Comparison: transport.Comparison{
			CorpType:   req.CorpType,
			EmpSize:    req.EmpSize,
			Results:    results,
			BestState:  optional(cmp.BestState),
			WorstState: optional(cmp.WorstState),
		},
		Errors:  cmp.Errors,
		Summary: fmt.Sprintf("Compared %d states for %s businesses with %s employees", len(results), req.CorpType, req.EmpSize),
	}, nil
}

// TopStates ranks the best states for a profile, defaulting to the top 10.
func (s *Service) TopStates(req transport.TopStatesRequest) (*transport.TopStatesResponse, error) {
	n := transport.DefaultTopN
	if req.N != nil {
		n = *req.N
	}
	if n < 0 {
		return nil, apperr.Validation("n must not be negative").WithOp("scores.TopStates")
	}

	ranking := s.index.TopStates(req.CorpType, req.EmpSize, n)
	if !ranking.Loaded {
		return nil, apperr.Unavailable(msgNotLoaded).WithOp("scores.TopStates")
	}

	ranked := make([]transport.RankedState, 0, len(ranking.Results))
	for _, entry := range ranking.Results {
		ranked = append(ranked, transport.RankedState{
			Rank:               entry.Rank,
			State:              entry.State,
			Score:              entry.Score,
			Confidence:         entry.Confidence,
			Establishments:     entry.Establishments,
			AvgSalaryThousands: round2(entry.AvgSalaryThousands),
		})
	}

	return &transport.TopStatesResponse{
		Query: transport.TopStatesQuery{
			CorpType:  req.CorpType,
			EmpSize:   req.EmpSize,
			Requested: n,
		},
		TopStates:      ranked,
		TotalAvailable: ranking.TotalAvailable,
	}, nil
}

func buildSuggestions(req transport.GetScoreRequest, hints domain.FieldHints) []string {
	suggestions := make([]string, 0, 3)
	if !hints.StateKnown {
		suggestions = append(suggestions, fmt.Sprintf("Invalid state '%s'. Use list_states to see valid options.", req.State))
	}
	if !hints.CorpTypeKnown {
		suggestions = append(suggestions, fmt.Sprintf("Invalid corp_type '%s'. Use list_corp_types to see valid options.", req.CorpType))
	}
	if !hints.EmpSizeKnown {
		suggestions = append(suggestions, fmt.Sprintf("Invalid emp_size '%s'. Use list_emp_sizes to see valid options.", req.EmpSize))
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "This combination may not exist in the census data")
	}
	return suggestions
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
