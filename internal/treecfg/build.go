package treecfg

import (
	"fmt"
	"time"

	"github.com/comalice/forestx"
)

// BuildTree validates cfg and lowers it into a compiled tree bound to
// keeper. Children are lowered in declaration order, so node visitation
// order matches the document.
func BuildTree(cfg *TreeConfig, keeper *forestx.ActionKeeper, opts ...forestx.Option) (*forestx.RTree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := forestx.NewTreeBuilder()
	var lower func(name string) (forestx.NodeID, error)
	lower = func(name string) (forestx.NodeID, error) {
		n := cfg.Nodes[name]

		ids := make([]forestx.NodeID, len(n.Children))
		for i, c := range n.Children {
			id, err := lower(c)
			if err != nil {
				return 0, err
			}
			ids[i] = id
		}

		var id forestx.NodeID
		switch n.Kind {
		case KindAction:
			args, err := lowerArgs(n.Args)
			if err != nil {
				return 0, fmt.Errorf("node %q: %w", name, err)
			}
			id = b.Action(n.Action, args...)
		case KindSequence:
			id = b.Sequence(ids...)
		case KindFallback:
			id = b.Fallback(ids...)
		case KindParallel:
			policy := forestx.RequireAll
			if n.Policy == PolicyOne {
				policy = forestx.RequireOne
			}
			id = b.Parallel(policy, ids...)
		case KindInverter:
			id = b.Inverter(ids[0])
		case KindForceSuccess:
			id = b.ForceSuccess(ids[0])
		case KindForceFailure:
			id = b.ForceFailure(ids[0])
		case KindRetry:
			id = b.Retry(n.Limit, ids[0])
		case KindTimeout:
			budget, _ := time.ParseDuration(n.Timeout) // validated
			id = b.Timeout(budget, ids[0])
		}

		if n.Kind != KindAction {
			b.Label(id, name)
		}
		return id, nil
	}

	root, err := lower(cfg.Root)
	if err != nil {
		return nil, err
	}
	return b.Build(root, keeper, opts...)
}

func lowerArgs(args []ArgConfig) (forestx.RtArgs, error) {
	out := make(forestx.RtArgs, 0, len(args))
	for i, a := range args {
		var v forestx.RtValue
		if a.Ptr != "" {
			v = forestx.Pointer(a.Ptr)
		} else {
			rv, err := forestx.ValueOf(a.Value)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			v = rv
		}
		out = append(out, forestx.NewArg(a.Name, v))
	}
	return out, nil
}
