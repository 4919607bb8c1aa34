// Package chartfile loads and saves declarative chart documents: the YAML
// description of a node hierarchy that the tree engine operates over.
package chartfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/statetree"
)

// StateConfig describes one node of a chart document. Key is the node's key
// under its parent. Kind defaults to compound when child states are present
// and atomic otherwise.
type StateConfig struct {
	Key      string         `yaml:"key" json:"key"`
	Kind     string         `yaml:"kind,omitempty" json:"kind,omitempty"`
	Initial  string         `yaml:"initial,omitempty" json:"initial,omitempty"`
	Events   []string       `yaml:"events,omitempty" json:"events,omitempty"`
	DoneData any            `yaml:"doneData,omitempty" json:"doneData,omitempty"`
	States   []*StateConfig `yaml:"states,omitempty" json:"states,omitempty"`
}

// ChartConfig is the top-level chart document. The root is an implicit
// compound node with the chart's ID.
type ChartConfig struct {
	ID      string         `yaml:"id" json:"id"`
	Initial string         `yaml:"initial,omitempty" json:"initial,omitempty"`
	States  []*StateConfig `yaml:"states" json:"states"`
}

// Parse decodes a chart document.
func Parse(data []byte) (*ChartConfig, error) {
	var config ChartConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if config.ID == "" {
		return nil, fmt.Errorf("chart document requires an id")
	}
	return &config, nil
}

// Load reads and decodes a chart document from a file.
func Load(path string) (*ChartConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// Marshal encodes the chart document as YAML.
func (c *ChartConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Node converts the document into a validated StateNode hierarchy.
func (c *ChartConfig) Node() (*statetree.StateNode, error) {
	root := statetree.NewStateNode(c.ID, statetree.KindCompound)
	root.Initial = c.Initial
	if root.Initial == "" && len(c.States) > 0 {
		root.Initial = c.States[0].Key
	}
	if err := addStates(root, c.States); err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("chart %q: %w", c.ID, err)
	}
	return root, nil
}

func addStates(parent *statetree.StateNode, states []*StateConfig) error {
	seen := make(map[string]struct{}, len(states))
	for _, state := range states {
		if strings.TrimSpace(state.Key) == "" {
			return fmt.Errorf("state under %q requires a key", parent.ID)
		}
		if _, dup := seen[state.Key]; dup {
			return fmt.Errorf("duplicate state key %q under %q", state.Key, parent.ID)
		}
		seen[state.Key] = struct{}{}

		kind, err := state.kind()
		if err != nil {
			return err
		}
		node := statetree.NewStateNode(parent.ID+"."+state.Key, kind)
		node.Events = state.Events
		node.DoneData = state.DoneData
		node.Initial = state.Initial
		if kind == statetree.KindCompound && node.Initial == "" && len(state.States) > 0 {
			node.Initial = state.States[0].Key
		}
		if err := addStates(node, state.States); err != nil {
			return err
		}
		parent.AddChild(state.Key, node)
	}
	return nil
}

func (s *StateConfig) kind() (statetree.NodeKind, error) {
	switch s.Kind {
	case "":
		if len(s.States) > 0 {
			return statetree.KindCompound, nil
		}
		return statetree.KindAtomic, nil
	case "atomic":
		return statetree.KindAtomic, nil
	case "compound":
		return statetree.KindCompound, nil
	case "parallel":
		return statetree.KindParallel, nil
	case "final":
		return statetree.KindFinal, nil
	default:
		return "", fmt.Errorf("invalid kind %q for state %q", s.Kind, s.Key)
	}
}
