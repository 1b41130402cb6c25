package shadowdark

// ResultKind says whether a table result is inline text or a document reference
type ResultKind string

// Result kinds
const (
	ResultText     ResultKind = "text"
	ResultDocument ResultKind = "document"
)

// TableResult is one range-keyed entry of a roll table. For document results
// Text carries the label the table shows for the entry.
type TableResult struct {
	Range      [2]int     `yaml:"range" json:"range"`
	Kind       ResultKind `yaml:"kind" json:"kind"`
	Text       string     `yaml:"text,omitempty" json:"text,omitempty"`
	DocumentID string     `yaml:"document_id,omitempty" json:"document_id,omitempty"`
}

// Contains reports whether total falls within the result range
func (r TableResult) Contains(total int) bool {
	return total >= r.Range[0] && total <= r.Range[1]
}

// IsDocument reports whether the result points at another document
func (r TableResult) IsDocument() bool {
	return r.Kind == ResultDocument && r.DocumentID != ""
}

// RollTable is a range-keyed list of outcomes drawn with a dice formula
type RollTable struct {
	Formula string        `yaml:"formula" json:"formula"`
	Results []TableResult `yaml:"results" json:"results"`
}

// Matching returns every result whose range contains total, in table order
func (t *RollTable) Matching(total int) []TableResult {
	if t == nil {
		return nil
	}
	var out []TableResult
	for _, r := range t.Results {
		if r.Contains(total) {
			out = append(out, r)
		}
	}
	return out
}
