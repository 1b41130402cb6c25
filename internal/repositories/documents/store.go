package documents

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

const (
	initializeKey = "initialize"

	errDocumentNotFound = "document not found"
	errIDEmpty          = "document ID cannot be empty"
)

// Config holds the configuration for the document store
type Config struct {
	Source Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Source == nil {
		vb.RequiredField("Source")
	}
	return vb.Build()
}

type store struct {
	source Source
	group  singleflight.Group

	mu    sync.RWMutex
	ready bool
	docs  map[string]*shadowdark.Document
	order []string
}

// NewStore creates a document store over a pack source
func NewStore(cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &store{source: cfg.Source}, nil
}

// Ensure store implements Store
var _ Store = (*store)(nil)

func (s *store) Initialize(ctx context.Context) error {
	if s.isReady() {
		return nil
	}

	// the scan is shared by every concurrent caller, so it must not die
	// with whichever caller happened to start it
	scanCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(initializeKey, func() (any, error) {
		if s.isReady() {
			return nil, nil
		}
		return nil, s.scan(scanCtx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "document store initialization abandoned")
	}
}

func (s *store) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *store) scan(ctx context.Context) error {
	loaded, err := s.source.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load document pack")
	}

	docs := make(map[string]*shadowdark.Document, len(loaded))
	order := make([]string, 0, len(loaded))
	for _, doc := range loaded {
		if doc == nil || doc.ID == "" {
			continue
		}
		if _, seen := docs[doc.ID]; seen {
			slog.WarnContext(ctx, "duplicate document id in pack, keeping first",
				"document_id", doc.ID,
				"name", doc.Name)
			continue
		}
		docs[doc.ID] = doc
		order = append(order, doc.ID)
	}

	s.mu.Lock()
	s.docs = docs
	s.order = order
	s.ready = true
	s.mu.Unlock()

	slog.InfoContext(ctx, "document store initialized", "documents", len(order))
	return nil
}

func (s *store) GetDocument(ctx context.Context, id string) (*shadowdark.Document, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, errors.NotFound(errDocumentNotFound).WithMeta("document_id", id)
	}
	return doc, nil
}

func (s *store) GetAllDocuments(ctx context.Context) ([]*shadowdark.Document, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*shadowdark.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out, nil
}

func (s *store) GetIndex(ctx context.Context) (map[string]string, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]string, len(s.docs))
	for id, doc := range s.docs {
		index[id] = doc.Name
	}
	return index, nil
}

func (s *store) GetSpellsBySource(ctx context.Context, className string) ([]*shadowdark.Document, error) {
	if className == "" {
		return nil, errors.InvalidArgument("class name cannot be empty")
	}
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	class := s.classByName(className)
	if class == nil {
		return nil, errors.NotFoundf("class %q not found", className).WithMeta("class_name", className)
	}

	var spells []*shadowdark.Document
	for _, id := range s.order {
		doc := s.docs[id]
		if doc.Kind != shadowdark.KindSpell {
			continue
		}
		if s.referencesClass(doc, class.ID, map[string]bool{}) {
			spells = append(spells, doc)
		}
	}
	return spells, nil
}

func (s *store) classByName(name string) *shadowdark.Document {
	key := shadowdark.NameKey(name)
	for _, id := range s.order {
		doc := s.docs[id]
		if doc.Kind == shadowdark.KindClass && shadowdark.NameKey(doc.Name) == key {
			return doc
		}
	}
	return nil
}

// referencesClass follows a document's class references through the store.
// A reference may land on a class directly or on another document that
// carries its own class references.
func (s *store) referencesClass(doc *shadowdark.Document, classID string, visited map[string]bool) bool {
	for _, ref := range doc.Refs(shadowdark.PayloadClasses) {
		if visited[ref] {
			continue
		}
		visited[ref] = true

		target, ok := s.docs[ref]
		if !ok {
			continue
		}
		if target.Kind == shadowdark.KindClass {
			if target.ID == classID {
				return true
			}
			continue
		}
		if s.referencesClass(target, classID, visited) {
			return true
		}
	}
	return false
}

func (s *store) GetTable(ctx context.Context, id string) (*shadowdark.RollTable, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("roll table %q not found", id).WithMeta("table_id", id)
		}
		return nil, err
	}
	if doc.Kind != shadowdark.KindRollTable || doc.Table == nil {
		return nil, errors.InvalidArgumentf("document %q is not a roll table", id).WithMeta("table_id", id)
	}
	return doc.Table, nil
}
