// Package documents indexes content-pack documents and serves read-only
// lookups once the pack has been scanned.
package documents

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
)

// Store is the read side of the content library
type Store interface {
	// Initialize scans the source once. Concurrent callers share one scan.
	Initialize(ctx context.Context) error

	GetDocument(ctx context.Context, id string) (*shadowdark.Document, error)
	GetAllDocuments(ctx context.Context) ([]*shadowdark.Document, error)
	GetIndex(ctx context.Context) (map[string]string, error)
	GetSpellsBySource(ctx context.Context, className string) ([]*shadowdark.Document, error)
	GetTable(ctx context.Context, id string) (*shadowdark.RollTable, error)
}

// Source yields every document of a content pack
type Source interface {
	Load(ctx context.Context) ([]*shadowdark.Document, error)
}

// MemorySource serves documents held in memory
type MemorySource struct {
	Documents []*shadowdark.Document
}

// NewMemorySource creates a source over the given documents
func NewMemorySource(docs ...*shadowdark.Document) *MemorySource {
	return &MemorySource{Documents: docs}
}

// Load returns the held documents
func (m *MemorySource) Load(_ context.Context) ([]*shadowdark.Document, error) {
	return m.Documents, nil
}
