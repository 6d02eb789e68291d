// Package transport provides DTOs for the scores domain. Response shapes
// match what the scoring tools return over both the REST and the MCP
// surfaces.
package transport

// GetScoreRequest asks for the score of one exact combination.
type GetScoreRequest struct {
	State    string `form:"state" json:"state" validate:"required"`
	CorpType string `form:"corp_type" json:"corp_type" validate:"required"`
	EmpSize  string `form:"emp_size" json:"emp_size" validate:"required"`
}

// ScoreDetails carries the supporting data behind a score.
type ScoreDetails struct {
	State              string  `json:"state"`
	CorporationType    string  `json:"corporation_type"`
	EmployeeSize       string  `json:"employee_size"`
	Establishments     int     `json:"establishments"`
	TotalEmployees     int     `json:"total_employees"`
	AvgSalaryThousands float64 `json:"avg_salary_thousands"`
}

// Methodology describes where the scores come from.
type Methodology struct {
	Source     string `json:"source"`
	Model      string `json:"model"`
	ScoreRange string `json:"score_range"`
}

// ScoreResponse is the successful getScore payload.
type ScoreResponse struct {
	Score          float64      `json:"score"`
	Interpretation string       `json:"interpretation"`
	Confidence     string       `json:"confidence"`
	Details        ScoreDetails `json:"details"`
	Methodology    Methodology  `json:"methodology"`
}

// ProvidedInputs echoes the caller's original inputs on a failed lookup.
type ProvidedInputs struct {
	State    string `json:"state"`
	CorpType string `json:"corp_type"`
	EmpSize  string `json:"emp_size"`
}

// NotFoundDetails pinpoints which inputs were unrecognized.
type NotFoundDetails struct {
	Suggestions []string       `json:"suggestions"`
	Provided    ProvidedInputs `json:"provided"`
}

// StatesResponse lists the available states.
type StatesResponse struct {
	Count  int      `json:"count"`
	States []string `json:"states"`
	Note   string   `json:"note"`
}

// CorpTypeEntry is one corporation type with its description.
type CorpTypeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CorpTypesResponse lists the available corporation types.
type CorpTypesResponse struct {
	Count     int             `json:"count"`
	CorpTypes []CorpTypeEntry `json:"corp_types"`
}

// EmpSizesResponse lists the available employee size categories in canonical
// domain order.
type EmpSizesResponse struct {
	Count    int      `json:"count"`
	EmpSizes []string `json:"emp_sizes"`
	Note     string   `json:"note"`
}

// CompareRequest compares several states at a fixed profile. An empty state
// list is legal and yields an empty comparison.
type CompareRequest struct {
	States   []string `json:"states"`
	CorpType string   `json:"corp_type" validate:"required"`
	EmpSize  string   `json:"emp_size" validate:"required"`
}

// ComparisonEntry is one resolved state in a comparison.
type ComparisonEntry struct {
	State          string  `json:"state"`
	Score          float64 `json:"score"`
	Confidence     string  `json:"confidence"`
	Establishments int     `json:"establishments"`
}

// Comparison holds the ranked comparison results. BestState and WorstState
// are null when nothing resolved.
type Comparison struct {
	CorpType   string            `json:"corp_type"`
	EmpSize    string            `json:"emp_size"`
	Results    []ComparisonEntry `json:"results"`
	BestState  *string           `json:"best_state"`
	WorstState *string           `json:"worst_state"`
}

// CompareResponse is the compareStates payload. Errors is always present,
// empty when every state resolved.
type CompareResponse struct {
	Comparison Comparison `json:"comparison"`
	Errors     []string   `json:"errors"`
	Summary    string     `json:"summary"`
}

// TopStatesRequest asks for the best N states at a fixed profile. N is a
// pointer so "absent" (defaults to 10) can be told apart from an explicit 0.
type TopStatesRequest struct {
	CorpType string `form:"corp_type" json:"corp_type" validate:"required"`
	EmpSize  string `form:"emp_size" json:"emp_size" validate:"required"`
	N        *int   `form:"n" json:"n" validate:"omitempty,gte=0"`
}

// DefaultTopN is used when a topStates request does not specify n.
const DefaultTopN = 10

// RankedState is one entry of a top-N ranking.
type RankedState struct {
	Rank               int     `json:"rank"`
	State              string  `json:"state"`
	Score              float64 `json:"score"`
	Confidence         string  `json:"confidence"`
	Establishments     int     `json:"establishments"`
	AvgSalaryThousands float64 `json:"avg_salary_thousands"`
}

// TopStatesQuery echoes the ranking inputs.
type TopStatesQuery struct {
	CorpType  string `json:"corp_type"`
	EmpSize   string `json:"emp_size"`
	Requested int    `json:"requested"`
}

// TopStatesResponse is the topStates payload. TotalAvailable counts all
// matches before truncation to N.
type TopStatesResponse struct {
	Query          TopStatesQuery `json:"query"`
	TopStates      []RankedState  `json:"top_states"`
	TotalAvailable int            `json:"total_available"`
}
