package answer

// Table is the tabular part of an answer: ordered columns and rows whose
// cells line up with the columns.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Valid reports whether every row has exactly one cell per column. The mock
// data file is hand-edited, so the shape is checked before it reaches a
// message.
func (t Table) Valid() bool {
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return false
		}
	}
	return true
}

// Payload is the fixed answer returned for every question.
type Payload struct {
	AnswerText  string `json:"answerText"`
	Table       Table  `json:"table"`
	Description string `json:"description"`
}

// Fallback returns the built-in payload used whenever the data file cannot
// be read or fails validation.
func Fallback() Payload {
	return Payload{
		AnswerText: "Fallback sample answer",
		Table: Table{
			Columns: []string{"Col1", "Col2"},
			Rows:    [][]string{{"A", "B"}, {"C", "D"}},
		},
		Description: "Fallback description",
	}
}
