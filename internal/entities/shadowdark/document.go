// Package shadowdark holds the content and character entities shared by the
// advancement engine, its repositories and its transport.
package shadowdark

import (
	"strings"
)

// DocumentKind identifies what a content document describes
type DocumentKind string

// Document kinds found in content packs
const (
	KindTalent    DocumentKind = "Talent"
	KindBoon      DocumentKind = "Boon"
	KindSpell     DocumentKind = "Spell"
	KindClass     DocumentKind = "Class"
	KindAncestry  DocumentKind = "Ancestry"
	KindPatron    DocumentKind = "Patron"
	KindRollTable DocumentKind = "RollTable"
	KindLanguage  DocumentKind = "Language"
	KindItem      DocumentKind = "Item"
)

// RefPrefix marks a payload string as a reference to another document
const RefPrefix = "ref:"

// Payload keys the engine reads
const (
	PayloadClasses        = "classes"
	PayloadTalentTable    = "talentTable"
	PayloadBoonTable      = "boonTable"
	PayloadRequiresPatron = "requiresPatron"
	PayloadHitDie         = "hitDie"
	PayloadHPAdvantage    = "hpAdvantage"
	PayloadEffects        = "effects"
	PayloadTier           = "tier"
)

// Document is an immutable piece of rule content indexed by the document store
type Document struct {
	ID          string         `yaml:"id" json:"id"`
	Kind        DocumentKind   `yaml:"kind" json:"kind"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Payload     map[string]any `yaml:"payload,omitempty" json:"payload,omitempty"`
	Table       *RollTable     `yaml:"table,omitempty" json:"table,omitempty"`
}

// Ref builds a reference string for a document id
func Ref(id string) string {
	return RefPrefix + id
}

// ParseRef returns the document id of a reference value
func ParseRef(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, RefPrefix) {
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(s, RefPrefix))
	if id == "" {
		return "", false
	}
	return id, true
}

// String returns a string payload field or ""
func (d *Document) String(key string) string {
	if d == nil || d.Payload == nil {
		return ""
	}
	s, _ := d.Payload[key].(string)
	return s
}

// Bool returns a boolean payload field or false
func (d *Document) Bool(key string) bool {
	if d == nil || d.Payload == nil {
		return false
	}
	b, _ := d.Payload[key].(bool)
	return b
}

// Int returns an integer payload field. JSON decoding yields float64 so both
// are accepted.
func (d *Document) Int(key string) int {
	if d == nil || d.Payload == nil {
		return 0
	}
	switch v := d.Payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// List returns a list payload field or nil
func (d *Document) List(key string) []any {
	if d == nil || d.Payload == nil {
		return nil
	}
	l, _ := d.Payload[key].([]any)
	return l
}

// Refs returns the document ids referenced by a list payload field
func (d *Document) Refs(key string) []string {
	var ids []string
	for _, v := range d.List(key) {
		if id, ok := ParseRef(v); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// RefField returns the document id referenced by a scalar payload field
func (d *Document) RefField(key string) string {
	if d == nil || d.Payload == nil {
		return ""
	}
	id, _ := ParseRef(d.Payload[key])
	return id
}

// ReferenceLists returns, in key order, every list-valued payload field that
// contains at least one document reference.
func (d *Document) ReferenceLists(keys []string) map[string][]string {
	out := make(map[string][]string)
	for _, key := range keys {
		if refs := d.Refs(key); len(refs) > 0 {
			out[key] = refs
		}
	}
	return out
}
