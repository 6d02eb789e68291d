// Package domain holds the score lookup model: the table row type, the
// interpretation bands, and the category metadata. Everything here is pure
// data and pure functions over it.
package domain

// ScoreRecord is one row of the opportunity score lookup table, produced by
// the offline model run. Display-form strings keep the casing of the data
// source; normalization happens only when building query keys.
type ScoreRecord struct {
	State              string
	CorpType           string
	EmpSize            string
	Score              float64
	Confidence         string
	Establishments     int
	Employees          int
	AvgSalaryThousands float64
}

// CorpTypeInfo pairs a corporation type code with its human-readable
// description for the enumeration operation.
type CorpTypeInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// corpTypeDescriptions describes the known corporation type codes. Codes
// present in the data but absent here are described by the code itself.
var corpTypeDescriptions = map[string]string{
	"c-corp":          "C-Corporation (traditional corporation with double taxation)",
	"s-corp":          "S-Corporation (pass-through taxation)",
	"sole-proprietor": "Individual/Sole Proprietorship",
	"partnership":     "Partnership (general or limited)",
	"nonprofit":       "Non-profit organization (501c3, etc.)",
	"government":      "Government entity",
	"other":           "Other non-corporate legal forms",
}

// DescribeCorpType returns the description for a corporation type code,
// falling back to the code itself when unknown.
func DescribeCorpType(code string) string {
	if desc, ok := corpTypeDescriptions[code]; ok {
		return desc
	}
	return code
}

// canonicalEmpSizes is the domain order for employee size categories.
var canonicalEmpSizes = []string{
	"1-4", "5-9", "10-19", "20-49", "50-99", "100-249", "250-499", "500-999", "1000+",
}

// empSizeRank maps a canonical size category to its position. Values not in
// the canonical list sort after all canonical ones.
var empSizeRank = func() map[string]int {
	ranks := make(map[string]int, len(canonicalEmpSizes))
	for i, size := range canonicalEmpSizes {
		ranks[size] = i
	}
	return ranks
}()

// EmpSizeRank returns the canonical position of an employee size category
// and whether the category is canonical at all.
func EmpSizeRank(size string) (int, bool) {
	rank, ok := empSizeRank[size]
	return rank, ok
}

// Interpretation thresholds. Boundaries are inclusive on the upper band, so
// a score of exactly 80 reads as Excellent.
const (
	thresholdExcellent = 80
	thresholdGood      = 60
	thresholdModerate  = 40
	thresholdFair      = 20
)

// Interpret maps a score to its human-readable interpretation.
func Interpret(score float64) string {
	switch {
	case score >= thresholdExcellent:
		return "Excellent - Strong business opportunity indicators"
	case score >= thresholdGood:
		return "Good - Above average business conditions"
	case score >= thresholdModerate:
		return "Moderate - Average business environment"
	case score >= thresholdFair:
		return "Fair - Below average conditions"
	default:
		return "Limited - Challenging business environment"
	}
}
