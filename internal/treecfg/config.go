// Package treecfg decodes an already-resolved behavior tree definition from
// YAML or JSON and lowers it into a forestx arena. It is a configuration
// surface, not a DSL parser: node variants, child lists and leaf action
// names arrive fully resolved.
//
// TreeConfig is the top-level document: the tree ID, the root node name and
// a flat map of named nodes. Validation ensures kind validity, child
// existence, single-parent shape and reachability from the root.
package treecfg

import (
	"errors"
	"fmt"
	"time"
)

// Node kinds accepted in a definition.
const (
	KindAction       = "action"
	KindSequence     = "sequence"
	KindFallback     = "fallback"
	KindParallel     = "parallel"
	KindInverter     = "inverter"
	KindForceSuccess = "force_success"
	KindForceFailure = "force_failure"
	KindRetry        = "retry"
	KindTimeout      = "timeout"
)

// Parallel policies accepted in a definition.
const (
	PolicyAll = "all"
	PolicyOne = "one"
)

// TreeConfig defines the complete tree.
type TreeConfig struct {
	ID    string                 `json:"id" yaml:"id"`
	Root  string                 `json:"root" yaml:"root"`
	Nodes map[string]*NodeConfig `json:"nodes" yaml:"nodes"`
}

// NodeConfig defines a single node. Exactly the fields relevant to Kind may
// be set.
type NodeConfig struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Action   string      `json:"action,omitempty" yaml:"action,omitempty"`
	Args     []ArgConfig `json:"args,omitempty" yaml:"args,omitempty"`
	Children []string    `json:"children,omitempty" yaml:"children,omitempty"`
	Policy   string      `json:"policy,omitempty" yaml:"policy,omitempty"`
	Limit    int         `json:"limit,omitempty" yaml:"limit,omitempty"`
	Timeout  string      `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// ArgConfig defines one leaf-action argument. Value holds a literal decoded
// by yaml/json; Ptr references a blackboard key instead.
type ArgConfig struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
	Ptr   string `json:"ptr,omitempty" yaml:"ptr,omitempty"`
}

func isDecorator(kind string) bool {
	switch kind {
	case KindInverter, KindForceSuccess, KindForceFailure, KindRetry, KindTimeout:
		return true
	}
	return false
}

// Validate validates the entire tree configuration:
// - Non-empty ID and Root, Root exists in Nodes
// - Every node's kind, children count and kind-specific fields are valid
// - All referenced children exist and have a single parent
// - No orphaned nodes (all reachable from Root) and no cycles
func (t *TreeConfig) Validate() error {
	if t.ID == "" {
		return errors.New("tree ID is required")
	}
	if t.Root == "" {
		return errors.New("root node name is required")
	}
	if len(t.Nodes) == 0 {
		return errors.New("nodes map is required and cannot be empty")
	}
	if _, ok := t.Nodes[t.Root]; !ok {
		return fmt.Errorf("root node %q not found in nodes", t.Root)
	}

	parents := make(map[string]string)
	for name, n := range t.Nodes {
		if n == nil {
			return fmt.Errorf("node %q is empty", name)
		}
		if err := n.validate(name); err != nil {
			return err
		}
		for _, c := range n.Children {
			if _, ok := t.Nodes[c]; !ok {
				return fmt.Errorf("node %q references unknown child %q", name, c)
			}
			if p, seen := parents[c]; seen {
				return fmt.Errorf("node %q is a child of both %q and %q", c, p, name)
			}
			parents[c] = name
		}
	}
	if p, seen := parents[t.Root]; seen {
		return fmt.Errorf("root node %q is a child of %q", t.Root, p)
	}

	// Reachability with cycle detection.
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int)
	var walk func(name string) error
	walk = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("cycle detected through node %q", name)
		case visited:
			return nil
		}
		state[name] = visiting
		for _, c := range t.Nodes[name].Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		state[name] = visited
		return nil
	}
	if err := walk(t.Root); err != nil {
		return err
	}
	for name := range t.Nodes {
		if state[name] != visited {
			return fmt.Errorf("orphaned node %q (not reachable from root %q)", name, t.Root)
		}
	}

	return nil
}

func (n *NodeConfig) validate(name string) error {
	switch n.Kind {
	case KindAction:
		if n.Action == "" {
			return fmt.Errorf("action node %q requires an action name", name)
		}
		if len(n.Children) != 0 {
			return fmt.Errorf("action node %q must not have children", name)
		}
	case KindSequence, KindFallback:
		if len(n.Children) == 0 {
			return fmt.Errorf("%s node %q requires children", n.Kind, name)
		}
	case KindParallel:
		if len(n.Children) == 0 {
			return fmt.Errorf("parallel node %q requires children", name)
		}
		switch n.Policy {
		case "", PolicyAll, PolicyOne:
		default:
			return fmt.Errorf("parallel node %q has unknown policy %q", name, n.Policy)
		}
	case KindInverter, KindForceSuccess, KindForceFailure:
		if len(n.Children) != 1 {
			return fmt.Errorf("%s node %q requires exactly one child", n.Kind, name)
		}
	case KindRetry:
		if len(n.Children) != 1 {
			return fmt.Errorf("retry node %q requires exactly one child", name)
		}
		if n.Limit < 1 {
			return fmt.Errorf("retry node %q requires a limit of at least 1", name)
		}
	case KindTimeout:
		if len(n.Children) != 1 {
			return fmt.Errorf("timeout node %q requires exactly one child", name)
		}
		if _, err := time.ParseDuration(n.Timeout); err != nil {
			return fmt.Errorf("timeout node %q has invalid timeout %q: %w", name, n.Timeout, err)
		}
	case "":
		return fmt.Errorf("node %q requires a kind", name)
	default:
		return fmt.Errorf("node %q has unknown kind %q", name, n.Kind)
	}

	for i, a := range n.Args {
		if a.Ptr != "" && a.Value != nil {
			return fmt.Errorf("node %q argument %d sets both value and ptr", name, i)
		}
	}
	return nil
}
