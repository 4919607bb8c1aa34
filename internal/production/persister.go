// Package production provides production integrations around the tree
// engine: snapshot persistence and visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/statetree"
)

// TreeSnapshot is the serializable snapshot of one configuration.
type TreeSnapshot struct {
	ChartID   string               `json:"chartID" yaml:"chartID"`
	Value     statetree.StateValue `json:"value" yaml:"value"`
	Resolved  bool                 `json:"resolved" yaml:"resolved"`
	Timestamp time.Time            `json:"timestamp" yaml:"timestamp"`
}

// Snapshot captures a tree's projected value for persistence.
func Snapshot(chartID string, tree *statetree.StateTree) TreeSnapshot {
	return TreeSnapshot{
		ChartID:   chartID,
		Value:     tree.Value(),
		Resolved:  tree.IsResolved,
		Timestamp: time.Now(),
	}
}

// Persister stores and retrieves configuration snapshots by chart ID.
type Persister interface {
	Save(ctx context.Context, snapshot TreeSnapshot) error
	Load(ctx context.Context, chartID string) (TreeSnapshot, error)
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot TreeSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.ChartID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *JSONPersister) Load(ctx context.Context, chartID string) (TreeSnapshot, error) {
	fn := filepath.Join(p.dir, chartID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TreeSnapshot{}, fmt.Errorf("chart %q: %w", chartID, os.ErrNotExist)
		}
		return TreeSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot TreeSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return TreeSnapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.ChartID = chartID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot TreeSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snapshot.ChartID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

func (p *YAMLPersister) Load(ctx context.Context, chartID string) (TreeSnapshot, error) {
	fn := filepath.Join(p.dir, chartID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return TreeSnapshot{}, fmt.Errorf("chart %q: %w", chartID, os.ErrNotExist)
		}
		return TreeSnapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot TreeSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return TreeSnapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.ChartID = chartID // Ensure ID

	return snapshot, nil
}
