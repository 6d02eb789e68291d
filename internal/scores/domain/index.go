package domain

import (
	"sort"
	"strings"
)

// tableKey is the normalized (state, corp type, emp size) triple used for
// matching. Display forms never appear in keys.
type tableKey struct {
	state    string
	corpType string
	empSize  string
}

// Normalize produces the matching form of an input: case-folded and
// whitespace-trimmed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keyOf(state, corpType, empSize string) tableKey {
	return tableKey{
		state:    Normalize(state),
		corpType: Normalize(corpType),
		empSize:  Normalize(empSize),
	}
}

// Index is the immutable lookup structure built once from the loaded table.
// It exposes no mutation, so all query methods are safe for concurrent use.
type Index struct {
	byKey map[tableKey]ScoreRecord
	// keyOrder preserves table load order for deterministic scans. A
	// duplicate normalized key keeps its original position; only the
	// record is overwritten (last row wins).
	keyOrder []tableKey

	// Display sets keep every distinct raw string as provided by the data
	// source, in encounter order. Two casings of the same value are both
	// retained; only query keys are normalized.
	states    []string
	corpTypes []string
	empSizes  []string

	normStates    map[string]struct{}
	normCorpTypes map[string]struct{}
	normEmpSizes  map[string]struct{}
}

// BuildIndex constructs an Index from table rows. Rows whose normalized
// triples collide follow last-row-wins; an empty input yields an index that
// answers every query as not loaded.
func BuildIndex(rows []ScoreRecord) *Index {
	ix := &Index{
		byKey:         make(map[tableKey]ScoreRecord, len(rows)),
		keyOrder:      make([]tableKey, 0, len(rows)),
		normStates:    make(map[string]struct{}),
		normCorpTypes: make(map[string]struct{}),
		normEmpSizes:  make(map[string]struct{}),
	}

	seenStates := make(map[string]struct{})
	seenCorpTypes := make(map[string]struct{})
	seenEmpSizes := make(map[string]struct{})

	for _, row := range rows {
		key := keyOf(row.State, row.CorpType, row.EmpSize)
		if _, exists := ix.byKey[key]; !exists {
			ix.keyOrder = append(ix.keyOrder, key)
		}
		ix.byKey[key] = row

		if _, dup := seenStates[row.State]; !dup {
			seenStates[row.State] = struct{}{}
			ix.states = append(ix.states, row.State)
		}
		if _, dup := seenCorpTypes[row.CorpType]; !dup {
			seenCorpTypes[row.CorpType] = struct{}{}
			ix.corpTypes = append(ix.corpTypes, row.CorpType)
		}
		if _, dup := seenEmpSizes[row.EmpSize]; !dup {
			seenEmpSizes[row.EmpSize] = struct{}{}
			ix.empSizes = append(ix.empSizes, row.EmpSize)
		}

		ix.normStates[key.state] = struct{}{}
		ix.normCorpTypes[key.corpType] = struct{}{}
		ix.normEmpSizes[key.empSize] = struct{}{}
	}

	return ix
}

// Loaded reports whether the index holds any rows.
func (ix *Index) Loaded() bool {
	return len(ix.byKey) > 0
}

// Len returns the number of distinct normalized triples in the index.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// ResultKind tags the outcome of an exact lookup.
type ResultKind int

const (
	// ResultNotLoaded means the index holds zero rows; a deployment
	// condition, not a query error.
	ResultNotLoaded ResultKind = iota
	// ResultNotFound means the combination does not exist in the table.
	ResultNotFound
	// ResultFound means the combination matched exactly one record.
	ResultFound
)

// FieldHints says, for a failed lookup, whether each input value is known
// anywhere in its category. Used to tell "state not recognized" apart from
// "state recognized but this combination has no data".
type FieldHints struct {
	StateKnown    bool
	CorpTypeKnown bool
	EmpSizeKnown  bool
}

// LookupResult is the outcome of Lookup. Record and Interpretation are set
// only when Kind is ResultFound; Hints only when Kind is ResultNotFound.
type LookupResult struct {
	Kind           ResultKind
	Record         ScoreRecord
	Interpretation string
	Hints          FieldHints
}

// Lookup resolves the exact (state, corp type, emp size) combination.
// Matching is case- and whitespace-insensitive.
func (ix *Index) Lookup(state, corpType, empSize string) LookupResult {
	if !ix.Loaded() {
		return LookupResult{Kind: ResultNotLoaded}
	}

	key := keyOf(state, corpType, empSize)
	record, ok := ix.byKey[key]
	if !ok {
		return LookupResult{
			Kind: ResultNotFound,
			Hints: FieldHints{
				StateKnown:    contains(ix.normStates, key.state),
				CorpTypeKnown: contains(ix.normCorpTypes, key.corpType),
				EmpSizeKnown:  contains(ix.normEmpSizes, key.empSize),
			},
		}
	}

	return LookupResult{
		Kind:           ResultFound,
		Record:         record,
		Interpretation: Interpret(record.Score),
	}
}

// States returns the distinct display-form state strings in lexicographic
// order. The second return is false when the index is empty.
func (ix *Index) States() ([]string, bool) {
	if !ix.Loaded() {
		return nil, false
	}
	states := make([]string, len(ix.states))
	copy(states, ix.states)
	sort.Strings(states)
	return states, true
}

// CorpTypes returns the distinct corporation type codes in lexicographic
// order, each with its description. The second return is false when the
// index is empty.
func (ix *Index) CorpTypes() ([]CorpTypeInfo, bool) {
	if !ix.Loaded() {
		return nil, false
	}
	codes := make([]string, len(ix.corpTypes))
	copy(codes, ix.corpTypes)
	sort.Strings(codes)

	infos := make([]CorpTypeInfo, 0, len(codes))
	for _, code := range codes {
		infos = append(infos, CorpTypeInfo{Code: code, Description: DescribeCorpType(code)})
	}
	return infos, true
}

// EmpSizes returns the distinct employee size categories in canonical domain
// order. Categories absent from the canonical list sort after all canonical
// ones, stable in encounter order. The second return is false when the index
// is empty.
func (ix *Index) EmpSizes() ([]string, bool) {
	if !ix.Loaded() {
		return nil, false
	}
	sizes := make([]string, len(ix.empSizes))
	copy(sizes, ix.empSizes)
	sort.SliceStable(sizes, func(i, j int) bool {
		ri, iCanon := EmpSizeRank(sizes[i])
		rj, jCanon := EmpSizeRank(sizes[j])
		if iCanon && jCanon {
			return ri < rj
		}
		// canonical before non-canonical; two non-canonical values keep
		// their relative order (stable sort)
		return iCanon && !jCanon
	})
	return sizes, true
}

// ComparisonEntry is one resolved state in a multi-state comparison.
type ComparisonEntry struct {
	State          string
	Score          float64
	Confidence     string
	Establishments int
}

// Comparison is the outcome of CompareStates. Errors always holds a slice
// (possibly empty), never nil. BestState and WorstState are empty when no
// input state resolved.
type Comparison struct {
	Loaded     bool
	Results    []ComparisonEntry
	BestState  string
	WorstState string
	Errors     []string
}

// CompareStates looks up each input state at the fixed (corp type, emp size)
// and ranks the resolved ones by score, best first. States that do not
// resolve are reported verbatim in Errors; partial resolution is an ordinary
// outcome, never a failure.
func (ix *Index) CompareStates(states []string, corpType, empSize string) Comparison {
	cmp := Comparison{
		Loaded:  ix.Loaded(),
		Results: make([]ComparisonEntry, 0, len(states)),
		Errors:  make([]string, 0),
	}
	if !cmp.Loaded {
		return cmp
	}

	for _, state := range states {
		key := keyOf(state, corpType, empSize)
		record, ok := ix.byKey[key]
		if !ok {
			cmp.Errors = append(cmp.Errors, state)
			continue
		}
		cmp.Results = append(cmp.Results, ComparisonEntry{
			State:          record.State,
			Score:          record.Score,
			Confidence:     record.Confidence,
			Establishments: record.Establishments,
		})
	}

	// ties keep the relative input order
	sort.SliceStable(cmp.Results, func(i, j int) bool {
		return cmp.Results[i].Score > cmp.Results[j].Score
	})

	if len(cmp.Results) > 0 {
		cmp.BestState = cmp.Results[0].State
		cmp.WorstState = cmp.Results[len(cmp.Results)-1].State
	}
	return cmp
}

// RankedState is one entry of a top-N ranking.
type RankedState struct {
	Rank               int
	State              string
	Score              float64
	Confidence         string
	Establishments     int
	AvgSalaryThousands float64
}

// Ranking is the outcome of TopStates. TotalAvailable counts every match
// before truncation to N.
type Ranking struct {
	Loaded         bool
	Results        []RankedState
	TotalAvailable int
}

// TopStates ranks all states with data for the normalized (corp type, emp
// size) by score, best first, and keeps the first n with dense 1-based
// ranks. n must be non-negative; n == 0 yields an empty list while
// TotalAvailable still reports the true match count.
func (ix *Index) TopStates(corpType, empSize string, n int) Ranking {
	ranking := Ranking{Loaded: ix.Loaded(), Results: make([]RankedState, 0)}
	if !ranking.Loaded {
		return ranking
	}

	normCorp := Normalize(corpType)
	normEmp := Normalize(empSize)

	matches := make([]ScoreRecord, 0)
	for _, key := range ix.keyOrder {
		if key.corpType != normCorp || key.empSize != normEmp {
			continue
		}
		matches = append(matches, ix.byKey[key])
	}

	// ties keep table load order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	ranking.TotalAvailable = len(matches)
	if n < 0 {
		n = 0
	}
	if n < len(matches) {
		matches = matches[:n]
	}
	for i, record := range matches {
		ranking.Results = append(ranking.Results, RankedState{
			Rank:               i + 1,
			State:              record.State,
			Score:              record.Score,
			Confidence:         record.Confidence,
			Establishments:     record.Establishments,
			AvgSalaryThousands: record.AvgSalaryThousands,
		})
	}
	return ranking
}

func contains(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}
