package documents

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-companion/internal/entities/shadowdark"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// packFile is the on-disk layout of a content pack file
type packFile struct {
	Documents []*shadowdark.Document `yaml:"documents"`
}

// YAMLSource reads every *.yaml and *.yml file below the root of a file system
type YAMLSource struct {
	fsys fs.FS
}

// NewYAMLSource creates a source over a content pack directory
func NewYAMLSource(fsys fs.FS) *YAMLSource {
	return &YAMLSource{fsys: fsys}
}

// Load parses every pack file in lexical path order
func (y *YAMLSource) Load(ctx context.Context) ([]*shadowdark.Document, error) {
	if y.fsys == nil {
		return nil, errors.InvalidArgument("pack file system is required")
	}

	var docs []*shadowdark.Document
	err := fs.WalkDir(y.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !isPackFile(p) {
			return nil
		}

		data, err := fs.ReadFile(y.fsys, p)
		if err != nil {
			return errors.Wrapf(err, "failed to read pack file %s", p)
		}
		parsed, err := ParsePack(data)
		if err != nil {
			return errors.Wrapf(err, "failed to parse pack file %s", p)
		}
		docs = append(docs, parsed...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load yaml pack")
	}
	return docs, nil
}

func isPackFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

// ParsePack decodes one pack file and checks every document has an id and kind
func ParsePack(data []byte) ([]*shadowdark.Document, error) {
	var pack packFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, errors.InvalidArgumentf("invalid pack yaml: %v", err)
	}

	vb := errors.NewValidationBuilder()
	for i, doc := range pack.Documents {
		if doc == nil {
			vb.Fieldf("documents", "entry %d is empty", i)
			continue
		}
		if doc.ID == "" {
			vb.Fieldf("documents", "entry %d has no id", i)
		}
		if doc.Kind == "" {
			vb.Fieldf("documents", "entry %d (%s) has no kind", i, doc.ID)
		}
		if doc.Kind == shadowdark.KindRollTable && doc.Table == nil {
			vb.Fieldf("documents", "roll table %s has no table", doc.ID)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return pack.Documents, nil
}
