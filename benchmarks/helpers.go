// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/forestx"
)

// succeed is a no-op action that always succeeds.
var succeed = forestx.SyncAction(forestx.ImplFn(
	func(forestx.RtArgs, forestx.TreeContextRef) (forestx.TickResult, error) {
		return forestx.Success(), nil
	}))

// NewKeeper builds a keeper with n trivially succeeding actions named a0..aN.
func NewKeeper(n int) *forestx.ActionKeeper {
	k := forestx.NewActionKeeper()
	for i := 0; i < n; i++ {
		k.Register(fmt.Sprintf("a%d", i), succeed)
	}
	return k
}

// GenWideTree builds a single sequence over n leaf actions.
func GenWideTree(n int) (*forestx.RTree, error) {
	if n < 1 {
		n = 1
	}
	b := forestx.NewTreeBuilder()
	leaves := make([]forestx.NodeID, n)
	for i := range leaves {
		leaves[i] = b.Action(fmt.Sprintf("a%d", i))
	}
	return b.Build(b.Sequence(leaves...), NewKeeper(n))
}

// GenDeepTree builds a chain of depth nested sequences ending in one leaf.
func GenDeepTree(depth int) (*forestx.RTree, error) {
	if depth < 1 {
		depth = 1
	}
	b := forestx.NewTreeBuilder()
	node := b.Action("a0")
	for i := 0; i < depth; i++ {
		node = b.Sequence(node)
	}
	return b.Build(node, NewKeeper(1))
}

// GenParallelTree builds one parallel node fanning out over n leaves.
func GenParallelTree(n int) (*forestx.RTree, error) {
	if n < 1 {
		n = 1
	}
	b := forestx.NewTreeBuilder()
	leaves := make([]forestx.NodeID, n)
	for i := range leaves {
		leaves[i] = b.Action(fmt.Sprintf("a%d", i))
	}
	return b.Build(b.Parallel(forestx.RequireAll, leaves...), NewKeeper(n))
}
