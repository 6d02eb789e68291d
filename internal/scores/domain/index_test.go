package domain

import (
	"reflect"
	"testing"
)

func sampleRows() []ScoreRecord {
	return []ScoreRecord{
		{State: "California", CorpType: "c-corp", EmpSize: "10-19", Score: 87.5, Confidence: "high", Establishments: 12000, Employees: 180000, AvgSalaryThousands: 95.25},
		{State: "Texas", CorpType: "c-corp", EmpSize: "10-19", Score: 74.2, Confidence: "high", Establishments: 9800, Employees: 150000, AvgSalaryThousands: 78.1},
		{State: "Ohio", CorpType: "c-corp", EmpSize: "10-19", Score: 55.0, Confidence: "medium", Establishments: 4100, Employees: 61000, AvgSalaryThousands: 62.4},
		{State: "Vermont", CorpType: "s-corp", EmpSize: "1-4", Score: 41.3, Confidence: "low", Establishments: 800, Employees: 2100, AvgSalaryThousands: 54.0},
	}
}

func TestLookupFoundRoundTrip(t *testing.T) {
	ix := BuildIndex(sampleRows())

	result := ix.Lookup("California", "c-corp", "10-19")
	if result.Kind != ResultFound {
		t.Fatalf("expected ResultFound, got %v", result.Kind)
	}
	if result.Record.Score != 87.5 || result.Record.State != "California" {
		t.Fatalf("unexpected record: %+v", result.Record)
	}
	if result.Record.Establishments != 12000 || result.Record.Employees != 180000 {
		t.Fatalf("counts not preserved: %+v", result.Record)
	}
	if result.Interpretation != Interpret(87.5) {
		t.Fatalf("unexpected interpretation: %q", result.Interpretation)
	}
}

func TestLookupCaseAndWhitespaceInsensitive(t *testing.T) {
	ix := BuildIndex(sampleRows())

	a := ix.Lookup("california", "C-Corp", "10-19")
	b := ix.Lookup(" California ", "c-corp", "  10-19")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("variant lookups differ: %+v vs %+v", a, b)
	}
	if a.Kind != ResultFound {
		t.Fatalf("expected ResultFound, got %v", a.Kind)
	}
}

func TestBuildDuplicateKeyLastWins(t *testing.T) {
	ix := BuildIndex([]ScoreRecord{
		{State: "CA", CorpType: "c-corp", EmpSize: "1-4", Score: 10},
		{State: "ca", CorpType: "c-corp", EmpSize: "1-4", Score: 90},
	})

	result := ix.Lookup("ca", "c-corp", "1-4")
	if result.Kind != ResultFound {
		t.Fatalf("expected ResultFound, got %v", result.Kind)
	}
	if result.Record.Score != 90 {
		t.Fatalf("expected last row to win with score 90, got %v", result.Record.Score)
	}
	if ix.Len() != 1 {
		t.Fatalf("expected 1 distinct key, got %d", ix.Len())
	}
}

func TestDisplaySetsKeepCasingVariants(t *testing.T) {
	ix := BuildIndex([]ScoreRecord{
		{State: "California", CorpType: "c-corp", EmpSize: "1-4", Score: 10},
		{State: "california", CorpType: "c-corp", EmpSize: "1-4", Score: 90},
	})

	states, ok := ix.States()
	if !ok {
		t.Fatal("expected loaded index")
	}
	// display sets are deduplicated by exact string only; both casings stay
	if len(states) != 2 {
		t.Fatalf("expected both casing variants retained, got %v", states)
	}
}

func TestEmptyIndexReportsNotLoadedEverywhere(t *testing.T) {
	ix := BuildIndex(nil)

	if ix.Loaded() {
		t.Fatal("empty index must not report loaded")
	}
	if result := ix.Lookup("California", "c-corp", "10-19"); result.Kind != ResultNotLoaded {
		t.Fatalf("expected ResultNotLoaded, got %v", result.Kind)
	}
	if _, ok := ix.States(); ok {
		t.Fatal("States must report not loaded")
	}
	if _, ok := ix.CorpTypes(); ok {
		t.Fatal("CorpTypes must report not loaded")
	}
	if _, ok := ix.EmpSizes(); ok {
		t.Fatal("EmpSizes must report not loaded")
	}
	if cmp := ix.CompareStates([]string{"California"}, "c-corp", "10-19"); cmp.Loaded {
		t.Fatal("CompareStates must report not loaded")
	}
	if ranking := ix.TopStates("c-corp", "10-19", 5); ranking.Loaded {
		t.Fatal("TopStates must report not loaded")
	}
}

func TestLookupNotFoundFieldHints(t *testing.T) {
	ix := BuildIndex(sampleRows())

	result := ix.Lookup("Vermont", "c-corp", "10-19")
	if result.Kind != ResultNotFound {
		t.Fatalf("expected ResultNotFound, got %v", result.Kind)
	}
	// every field is individually known, only the combination is missing
	if !result.Hints.StateKnown || !result.Hints.CorpTypeKnown || !result.Hints.EmpSizeKnown {
		t.Fatalf("expected all fields known, got %+v", result.Hints)
	}

	result = ix.Lookup("Atlantis", "c-corp", "10-19")
	if result.Hints.StateKnown {
		t.Fatal("Atlantis must not be a known state")
	}
	if !result.Hints.CorpTypeKnown || !result.Hints.EmpSizeKnown {
		t.Fatalf("corp type and emp size should be known, got %+v", result.Hints)
	}
}

func TestStatesSortedLexicographically(t *testing.T) {
	ix := BuildIndex(sampleRows())

	states, ok := ix.States()
	if !ok {
		t.Fatal("expected loaded index")
	}
	want := []string{"California", "Ohio", "Texas", "Vermont"}
	if !reflect.DeepEqual(states, want) {
		t.Fatalf("expected %v, got %v", want, states)
	}
}

func TestCorpTypesDescriptionsAndFallback(t *testing.T) {
	rows := append(sampleRows(), ScoreRecord{State: "Maine", CorpType: "cooperative", EmpSize: "1-4", Score: 33})
	ix := BuildIndex(rows)

	infos, ok := ix.CorpTypes()
	if !ok {
		t.Fatal("expected loaded index")
	}
	byCode := map[string]string{}
	for _, info := range infos {
		byCode[info.Code] = info.Description
	}
	if byCode["c-corp"] != "C-Corporation (traditional corporation with double taxation)" {
		t.Fatalf("unexpected c-corp description: %q", byCode["c-corp"])
	}
	// unknown codes describe themselves
	if byCode["cooperative"] != "cooperative" {
		t.Fatalf("expected fallback description, got %q", byCode["cooperative"])
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Code > infos[i].Code {
			t.Fatalf("codes not sorted: %v", infos)
		}
	}
}

func TestEmpSizesCanonicalOrderWithFallback(t *testing.T) {
	rows := []ScoreRecord{
		{State: "A", CorpType: "c-corp", EmpSize: "1000+", Score: 1},
		{State: "B", CorpType: "c-corp", EmpSize: "unknown-b", Score: 2},
		{State: "C", CorpType: "c-corp", EmpSize: "1-4", Score: 3},
		{State: "D", CorpType: "c-corp", EmpSize: "unknown-a", Score: 4},
		{State: "E", CorpType: "c-corp", EmpSize: "50-99", Score: 5},
	}
	ix := BuildIndex(rows)

	sizes, ok := ix.EmpSizes()
	if !ok {
		t.Fatal("expected loaded index")
	}
	// canonical order first, then non-canonical values in encounter order
	want := []string{"1-4", "50-99", "1000+", "unknown-b", "unknown-a"}
	if !reflect.DeepEqual(sizes, want) {
		t.Fatalf("expected %v, got %v", want, sizes)
	}
}

func TestCompareStatesPartialResolution(t *testing.T) {
	ix := BuildIndex(sampleRows())

	cmp := ix.CompareStates([]string{"California", "Nowhere", "Texas"}, "c-corp", "10-19")
	if !cmp.Loaded {
		t.Fatal("expected loaded comparison")
	}
	if len(cmp.Results) != 2 {
		t.Fatalf("expected 2 resolved states, got %d", len(cmp.Results))
	}
	if cmp.Results[0].State != "California" || cmp.Results[1].State != "Texas" {
		t.Fatalf("expected score-descending order, got %+v", cmp.Results)
	}
	if cmp.BestState != "California" || cmp.WorstState != "Texas" {
		t.Fatalf("unexpected best/worst: %q/%q", cmp.BestState, cmp.WorstState)
	}
	if !reflect.DeepEqual(cmp.Errors, []string{"Nowhere"}) {
		t.Fatalf("expected errors [Nowhere], got %v", cmp.Errors)
	}
}

func TestCompareStatesEmptyInput(t *testing.T) {
	ix := BuildIndex(sampleRows())

	cmp := ix.CompareStates(nil, "c-corp", "10-19")
	if len(cmp.Results) != 0 {
		t.Fatalf("expected no results, got %v", cmp.Results)
	}
	if cmp.BestState != "" || cmp.WorstState != "" {
		t.Fatalf("expected empty best/worst, got %q/%q", cmp.BestState, cmp.WorstState)
	}
	if cmp.Errors == nil || len(cmp.Errors) != 0 {
		t.Fatalf("expected empty non-nil errors, got %v", cmp.Errors)
	}
}

func TestCompareStatesStableTieOrder(t *testing.T) {
	ix := BuildIndex([]ScoreRecord{
		{State: "Alpha", CorpType: "c-corp", EmpSize: "1-4", Score: 50},
		{State: "Beta", CorpType: "c-corp", EmpSize: "1-4", Score: 50},
		{State: "Gamma", CorpType: "c-corp", EmpSize: "1-4", Score: 50},
	})

	cmp := ix.CompareStates([]string{"Gamma", "Alpha", "Beta"}, "c-corp", "1-4")
	want := []string{"Gamma", "Alpha", "Beta"}
	for i, entry := range cmp.Results {
		if entry.State != want[i] {
			t.Fatalf("tie order not stable: got %+v", cmp.Results)
		}
	}
}

func TestTopStatesZeroNReportsTotal(t *testing.T) {
	ix := BuildIndex(sampleRows())

	ranking := ix.TopStates("c-corp", "10-19", 0)
	if len(ranking.Results) != 0 {
		t.Fatalf("expected empty results for n=0, got %v", ranking.Results)
	}
	if ranking.TotalAvailable != 3 {
		t.Fatalf("expected total of 3, got %d", ranking.TotalAvailable)
	}
}

func TestTopStatesDenseRanksAndTruncation(t *testing.T) {
	ix := BuildIndex(sampleRows())

	ranking := ix.TopStates("C-CORP", " 10-19 ", 2)
	if ranking.TotalAvailable != 3 {
		t.Fatalf("expected total of 3, got %d", ranking.TotalAvailable)
	}
	if len(ranking.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranking.Results))
	}
	for i, entry := range ranking.Results {
		if entry.Rank != i+1 {
			t.Fatalf("ranks not dense: %+v", ranking.Results)
		}
	}
	if ranking.Results[0].State != "California" || ranking.Results[1].State != "Texas" {
		t.Fatalf("unexpected ranking order: %+v", ranking.Results)
	}
}

func TestTopStatesTieBreakKeepsTableOrder(t *testing.T) {
	ix := BuildIndex([]ScoreRecord{
		{State: "First", CorpType: "c-corp", EmpSize: "1-4", Score: 60},
		{State: "Second", CorpType: "c-corp", EmpSize: "1-4", Score: 60},
		{State: "Leader", CorpType: "c-corp", EmpSize: "1-4", Score: 70},
	})

	ranking := ix.TopStates("c-corp", "1-4", 3)
	want := []string{"Leader", "First", "Second"}
	for i, entry := range ranking.Results {
		if entry.State != want[i] {
			t.Fatalf("expected %v, got %+v", want, ranking.Results)
		}
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	ix := BuildIndex(sampleRows())

	first := ix.Lookup("texas", "c-corp", "10-19")
	second := ix.Lookup("texas", "c-corp", "10-19")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("lookup not idempotent: %+v vs %+v", first, second)
	}

	cmpA := ix.CompareStates([]string{"Texas", "Ohio"}, "c-corp", "10-19")
	cmpB := ix.CompareStates([]string{"Texas", "Ohio"}, "c-corp", "10-19")
	if !reflect.DeepEqual(cmpA, cmpB) {
		t.Fatalf("compare not idempotent: %+v vs %+v", cmpA, cmpB)
	}

	topA := ix.TopStates("c-corp", "10-19", 10)
	topB := ix.TopStates("c-corp", "10-19", 10)
	if !reflect.DeepEqual(topA, topB) {
		t.Fatalf("top states not idempotent: %+v vs %+v", topA, topB)
	}
}
