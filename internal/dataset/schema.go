package dataset

import "github.com/go-gota/gota/series"

// Role is the semantic role of a column in the student performance schema.
type Role int

const (
	Categorical Role = iota
	Numeric
	// Grade is a numeric column with the hard domain bounds [0, 20].
	Grade
)

type Column struct {
	Name string
	Role Role
}

// StudentSchema lists the expected columns of the UCI student performance
// dataset. A file may carry any subset of these; presence is resolved once
// at load time and report sections work off the resolved view.
var StudentSchema = []Column{
	{"school", Categorical},
	{"sex", Categorical},
	{"age", Numeric},
	{"address", Categorical},
	{"famsize", Categorical},
	{"Pstatus", Categorical},
	{"Medu", Numeric},
	{"Fedu", Numeric},
	{"Mjob", Categorical},
	{"Fjob", Categorical},
	{"reason", Categorical},
	{"guardian", Categorical},
	{"traveltime", Numeric},
	{"studytime", Numeric},
	{"failures", Numeric},
	{"schoolsup", Categorical},
	{"famsup", Categorical},
	{"paid", Categorical},
	{"activities", Categorical},
	{"nursery", Categorical},
	{"higher", Categorical},
	{"internet", Categorical},
	{"romantic", Categorical},
	{"famrel", Numeric},
	{"freetime", Numeric},
	{"goout", Numeric},
	{"Dalc", Numeric},
	{"Walc", Numeric},
	{"health", Numeric},
	{"absences", Numeric},
	{"G1", Grade},
	{"G2", Grade},
	{"G3", Grade},
}

// gradeOrder is the fixed ordering of grade columns; the final grade is the
// last one present in a file.
var gradeOrder = []string{"G1", "G2", "G3"}

// identityColumns is the heuristic subset used for near-duplicate detection.
// It is not a real key; two students may legitimately collide on it.
var identityColumns = []string{"school", "sex", "age", "address", "famsize", "Pstatus"}

func (r Role) seriesType() series.Type {
	if r == Categorical {
		return series.String
	}
	return series.Float
}

func schemaTypes() map[string]series.Type {
	m := make(map[string]series.Type, len(StudentSchema))
	for _, c := range StudentSchema {
		m[c.Name] = c.Role.seriesType()
	}
	return m
}

// Resolved is the schema checked against an actual file: which expected
// columns are present, plus classification of any extra columns by their
// detected type. Column lists keep dataframe order.
type Resolved struct {
	Names        []string
	Categoricals []string
	Numerics     []string
	Grades       []string
	Identity     []string

	present map[string]bool
}

func (r *Resolved) Has(name string) bool {
	return r.present[name]
}

// FinalGrade returns the last grade column present, matching the convention
// of deriving the pass/fail label from G3 when available.
func (r *Resolved) FinalGrade() (string, bool) {
	if len(r.Grades) == 0 {
		return "", false
	}
	return r.Grades[len(r.Grades)-1], true
}
