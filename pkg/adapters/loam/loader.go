// Package loam reads scenario documents (Markdown with frontmatter, JSON or
// YAML) from a directory through the Loam library.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Loader adapts the Loam library to the ports.ScenarioLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number so large integers survive decoding.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// Load finds the scenario whose normalized ID is name.
func (l *Loader) Load(ctx context.Context, name string) (domain.Scenario, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if docID(doc.ID, doc.Data) == name {
			return doc.Data.Scenario(name, doc.Content)
		}
	}
	return domain.Scenario{}, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
}

// List lists all scenarios in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := docID(doc.ID, doc.Data)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// docID uses the ID from metadata if available, otherwise the file name,
// without extension.
func docID(fileID string, meta ScenarioMetadata) string {
	rawID := meta.ID
	if rawID == "" {
		rawID = fileID
	}
	return trimExtension(rawID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
