package shadowdark

// Canonical labels synthesized by the table resolver
const (
	LabelDistributeToStats = "Distribute to Stats"
	LabelPatronBoon        = "Patron Boon"
	LabelPatronBoonTwice   = "Patron Boon (x2)"
	LabelChooseOne         = "Choose One"
)

// ChoiceOption is one pick offered to the player
type ChoiceOption struct {
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	DocumentID  string         `json:"document_id,omitempty"`
	Action      string         `json:"action,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

// Choice is an open decision produced by a table draw
type Choice struct {
	Title       string         `json:"title"`
	ChooseCount int            `json:"choose_count"`
	Options     []ChoiceOption `json:"options"`
	Source      ItemType       `json:"source"`
}
