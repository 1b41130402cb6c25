// Package tables draws from roll tables and turns a draw into either a
// concrete item or a canonicalized choice set.
package tables

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-companion/internal/advancement/filters"
	"github.com/KirkDiggler/rpg-companion/internal/advancement/talents"
	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/documents"
)

const titleChooseTwo = "Choose Two"

var (
	instructionPhrase = regexp.MustCompile(`(?i)^\s*(?:choose|pick|select)\s+(?:one|two|an?|1|2)(?:\s+(?:option|options|of the following))?\s*[:.]?\s*$`)
	// rows that point back at their own table, e.g. "Choose two talents from this table"
	selfReferencePhrase = regexp.MustCompile(`(?i)^\s*(?:choose|pick|select)\s+(?:one|two|an?|1|2)\b.*\bfrom\s+this\s+table\s*[:.]?\s*$`)
)

// Config holds the dependencies for the resolver
type Config struct {
	Documents  documents.Store
	Classifier *filters.Classifier
	Registry   *talents.Registry
	// Roller defaults to the toolkit roller
	Roller toolkitdice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Documents == nil {
		vb.RequiredField("Documents")
	}
	if c.Classifier == nil {
		vb.RequiredField("Classifier")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	return vb.Build()
}

// Draw is every table result matching one rolled total
type Draw struct {
	TableID string
	Target  shadowdark.ItemType
	Total   int
	Roll    dice.Result
	Results []shadowdark.TableResult
}

// Resolution is a draw interpreted through its flags: a single item, or a
// choice the player must settle
type Resolution struct {
	Item        *shadowdark.Item
	NeedsChoice bool
	Choice      *shadowdark.Choice
	Flags       filters.Flags
}

// Resolver turns table draws into items and choices
type Resolver struct {
	docs       documents.Store
	classifier *filters.Classifier
	registry   *talents.Registry
	roller     toolkitdice.Roller
}

// NewResolver creates a table resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = toolkitdice.DefaultRoller
	}
	return &Resolver{
		docs:       cfg.Documents,
		classifier: cfg.Classifier,
		registry:   cfg.Registry,
		roller:     roller,
	}, nil
}

// Draw rolls the table formula and collects the matching results
func (r *Resolver) Draw(ctx context.Context, tableID string, target shadowdark.ItemType) (*Draw, *shadowdark.RollTable, error) {
	table, err := r.docs.GetTable(ctx, tableID)
	if err != nil {
		return nil, nil, err
	}

	roll := dice.NewRoll(table.Formula, &dice.Options{Roller: r.roller})
	if err := roll.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "roll table %s has a bad formula", tableID)
	}

	draw := &Draw{
		TableID: tableID,
		Target:  target,
		Total:   roll.Evaluate(),
		Roll:    roll.Result(),
	}
	draw.Results = table.Matching(draw.Total)
	if len(draw.Results) == 0 {
		return nil, nil, errors.FailedPreconditionf("roll table %s has no result for %d", tableID, draw.Total).
			WithMeta("table_id", tableID)
	}

	slog.DebugContext(ctx, "table drawn",
		"table_id", tableID,
		"total", draw.Total,
		"results", len(draw.Results))
	return draw, table, nil
}

// Roll draws from a table and resolves the draw with the source's flags
func (r *Resolver) Roll(ctx context.Context, tableID, sourceID string, target shadowdark.ItemType) (*Draw, *Resolution, error) {
	draw, table, err := r.Draw(ctx, tableID, target)
	if err != nil {
		return nil, nil, err
	}
	flags := r.classifier.Classify(sourceID, draw.Total)
	res, err := r.ProcessRollResult(ctx, draw, table, flags)
	if err != nil {
		return nil, nil, err
	}
	return draw, res, nil
}

// ProcessRollResult interprets a draw. Branches are tried in a fixed order
// and the first that applies wins.
func (r *Resolver) ProcessRollResult(
	ctx context.Context, draw *Draw, table *shadowdark.RollTable, flags filters.Flags,
) (*Resolution, error) {
	if draw == nil {
		return nil, errors.InvalidArgument("draw is required")
	}
	target := draw.Target
	if target == "" {
		target = shadowdark.ItemTalent
	}

	entries, err := r.resolveEntries(ctx, draw.Results)
	if err != nil {
		return nil, err
	}
	if flags.Has(filters.DropBlank) {
		entries = dropBlank(entries)
	}

	var res *Resolution
	switch {
	case flags.Has(filters.ChooseTwoInstead):
		var all []entry
		if table != nil {
			all, err = r.resolveEntries(ctx, table.Results)
			if err != nil {
				return nil, err
			}
		}
		opts := options(dropBlank(dropInstructions(all)), false)
		res = r.choice(titleChooseTwo, 2, opts, target)

	case flags.HasAll(filters.DropChooseOne, filters.ChooseOne, filters.HasDistributeTable):
		opts := options(dropBlank(dropInstructions(entries)), true)
		res = r.choice(title(entries), 1, opts, target)

	case flags.HasAll(filters.DropChooseOne, filters.ChooseOne):
		opts := options(dropBlank(dropInstructions(entries)), false)
		res = r.choice(title(entries), 1, opts, target)

	case flags.HasAny(filters.DistributeOnce, filters.DistributeAny):
		item := &shadowdark.Item{Name: shadowdark.LabelDistributeToStats, Type: target}
		if flags.Has(filters.DistributeOnce) {
			item.Config = map[string]any{talents.ConfigMaxPerStat: 1}
		}
		res = &Resolution{Item: item}

	case flags.HasAny(filters.BoonAny, filters.BoonOnce):
		res = &Resolution{Item: &shadowdark.Item{Name: shadowdark.LabelPatronBoon, Type: target}}

	case flags.Has(filters.BoonTwice):
		res = &Resolution{Item: &shadowdark.Item{Name: shadowdark.LabelPatronBoonTwice, Type: target}}

	case flags.Has(filters.WarlockComposite):
		opts := options(dropBlank(dropInstructions(entries)), true)
		res = r.choice(title(entries), 1, opts, target)

	default:
		item, err := plainItem(dropBlank(entries), target)
		if err != nil {
			return nil, errors.Wrapf(err, "roll table %s", draw.TableID)
		}
		res = &Resolution{Item: item}
	}
	res.Flags = flags

	if res.Choice != nil && len(res.Choice.Options) == 0 {
		return nil, errors.FailedPreconditionf("roll table %s produced a choice with no options", draw.TableID).
			WithMeta("table_id", draw.TableID)
	}
	if res.Item != nil {
		r.registry.Annotate(res.Item)
	}
	if res.Choice != nil {
		for i := range res.Choice.Options {
			r.registry.AnnotateOption(&res.Choice.Options[i])
		}
	}
	return res, nil
}

func (r *Resolver) choice(title string, count int, opts []shadowdark.ChoiceOption, target shadowdark.ItemType) *Resolution {
	// a choice with fewer options than picks still resolves; the player
	// takes what exists
	count = min(count, max(len(opts), 1))
	return &Resolution{
		NeedsChoice: true,
		Choice: &shadowdark.Choice{
			Title:       title,
			ChooseCount: count,
			Options:     opts,
			Source:      target,
		},
	}
}

// entry is a table result with any document reference resolved
type entry struct {
	label      string
	doc        *shadowdark.Document
	documentID string
}

func (e entry) blank() bool {
	return strings.TrimSpace(e.label) == ""
}

func (r *Resolver) resolveEntries(ctx context.Context, results []shadowdark.TableResult) ([]entry, error) {
	out := make([]entry, 0, len(results))
	for _, res := range results {
		e := entry{label: strings.TrimSpace(res.Text)}
		if res.IsDocument() {
			doc, err := r.docs.GetDocument(ctx, res.DocumentID)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to resolve table result %s", res.DocumentID)
			}
			e.doc = doc
			e.documentID = doc.ID
			// keep the table label when the document has no name
			if name := strings.TrimSpace(doc.Name); name != "" {
				e.label = name
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func isInstruction(label string) bool {
	trimmed := strings.TrimSpace(label)
	return instructionPhrase.MatchString(trimmed) ||
		selfReferencePhrase.MatchString(trimmed) ||
		strings.HasSuffix(trimmed, ":")
}

func title(entries []entry) string {
	for _, e := range entries {
		if e.doc == nil && isInstruction(e.label) {
			return strings.TrimSpace(e.label)
		}
	}
	return shadowdark.LabelChooseOne
}

func dropInstructions(entries []entry) []entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.doc == nil && isInstruction(e.label) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func dropBlank(entries []entry) []entry {
	out := entries[:0:0]
	for _, e := range entries {
		if !e.blank() {
			out = append(out, e)
		}
	}
	return out
}

// options builds choice options, deduplicated by case-insensitive label.
// With canonicalize, stat and boon phrases collapse into one option each.
func options(entries []entry, canonicalize bool) []shadowdark.ChoiceOption {
	seen := map[string]bool{}
	var out []shadowdark.ChoiceOption
	for _, e := range entries {
		opt := shadowdark.ChoiceOption{Label: e.label, DocumentID: e.documentID}
		if e.doc != nil {
			opt.Description = e.doc.Description
		}
		if canonicalize && e.doc == nil {
			switch {
			case talents.IsBoonPhrase(e.label):
				opt = shadowdark.ChoiceOption{Label: shadowdark.LabelPatronBoon}
			case talents.IsStatPhrase(e.label):
				opt = shadowdark.ChoiceOption{Label: shadowdark.LabelDistributeToStats}
			}
		}

		key := shadowdark.NameKey(opt.Label)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, opt)
	}
	return out
}

func plainItem(entries []entry, target shadowdark.ItemType) (*shadowdark.Item, error) {
	for _, e := range entries {
		if e.doc != nil {
			item := shadowdark.ItemFromDocument(e.doc)
			if item.Name == "" {
				item.Name = e.label
			}
			if item.Type == shadowdark.ItemBasic {
				item.Type = target
			}
			return item, nil
		}
		if isInstruction(e.label) {
			continue
		}
		return &shadowdark.Item{Name: e.label, Type: target}, nil
	}
	return nil, errors.FailedPrecondition("draw has no usable result")
}
