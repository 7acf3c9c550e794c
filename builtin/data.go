// Package builtin provides the standard data actions that operate on the
// blackboard. They are all synchronous and establish the canonical argument
// resolution idiom: prefer the named argument, fall back to the fixed
// positional slot, and fail explicitly when neither is present.
package builtin

import (
	"fmt"

	"github.com/comalice/forestx"
)

// LockOp selects the blackboard lock transition.
type LockOp int

const (
	LockKey LockOp = iota
	UnlockKey
)

// LockUnlockBBKey locks or unlocks a single blackboard key. The key is the
// first argument; any blackboard error aborts the tick with that error.
type LockUnlockBBKey struct {
	Op LockOp
}

func (a LockUnlockBBKey) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	v, ok := args.First()
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the key argument is not found")
	}
	cv, err := v.Cast(ctx)
	if err != nil {
		return forestx.TickResult{}, err
	}
	key, ok := cv.AsString()
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the key argument is not found")
	}

	if a.Op == LockKey {
		err = ctx.BB().Lock(key)
	} else {
		err = ctx.BB().Unlock(key)
	}
	if err != nil {
		return forestx.TickResult{}, err
	}
	return forestx.Success(), nil
}

// StoreTick writes the current tick number into the cell named by the first
// argument.
type StoreTick struct{}

func (StoreTick) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	curr := ctx.CurrentTick()
	v, ok := args.First()
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "store_tick has at least one parameter")
	}
	cv, err := v.Cast(ctx)
	if err != nil {
		return forestx.TickResult{}, err
	}
	key, ok := cv.AsString()
	if !ok {
		return forestx.Failure(fmt.Sprintf("the %s is not a string", v)), nil
	}
	if err := ctx.BB().Put(key, forestx.Int(int64(curr))); err != nil {
		return forestx.TickResult{}, err
	}
	return forestx.Success(), nil
}

// CheckEq compares the cell named by the key argument with the expected
// argument. Inequality is a Failure naming both values, not an error.
type CheckEq struct{}

func (CheckEq) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	keyArg, ok := args.FindOrIth("key", 0)
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the key is expected")
	}
	expected, ok := args.FindOrIth("expected", 1)
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the expected is expected")
	}

	actual, err := resolveCell(keyArg, ctx)
	if err != nil {
		return forestx.TickResult{}, err
	}
	if actual.Equals(expected) {
		return forestx.Success(), nil
	}
	return forestx.Failure(fmt.Sprintf("%s != %s", actual, expected)), nil
}

// GenerateData reads the cell named by the key argument (or the default
// argument when the cell is absent), applies Generator and writes the result
// back. The read and write are one critical section, so other actions never
// observe a partial update.
type GenerateData struct {
	Generator func(forestx.RtValue) forestx.RtValue
}

func (a GenerateData) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	if a.Generator == nil {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "generate_data has no generator")
	}
	key, err := stringArg(args, ctx, "key", 0)
	if err != nil {
		return forestx.TickResult{}, err
	}
	def, ok := args.FindOrIth("default", 1)
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the default is expected")
	}
	if err := ctx.BB().Update(key, def, a.Generator); err != nil {
		return forestx.TickResult{}, err
	}
	return forestx.Success(), nil
}

// StoreData writes the value argument into the cell named by the key
// argument, subject to the lock-aware put contract.
type StoreData struct{}

func (StoreData) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	key, err := stringArg(args, ctx, "key", 0)
	if err != nil {
		return forestx.TickResult{}, err
	}
	value, ok := args.FindOrIth("value", 1)
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the value is expected")
	}
	if err := ctx.BB().Put(key, value); err != nil {
		return forestx.TickResult{}, err
	}
	return forestx.Success(), nil
}

// stringArg resolves a required string argument by name or position.
func stringArg(args forestx.RtArgs, ctx forestx.TreeContextRef, name string, i int) (string, error) {
	v, ok := args.FindOrIth(name, i)
	if !ok {
		return "", forestx.NewRuntimeError(forestx.Unexpected, "the %s is expected and should be a string", name)
	}
	cv, err := v.Cast(ctx)
	if err != nil {
		return "", err
	}
	s, ok := cv.AsString()
	if !ok {
		return "", forestx.NewRuntimeError(forestx.Unexpected, "the %s is expected and should be a string", name)
	}
	return s, nil
}

// resolveCell resolves a key argument to the blackboard value it names.
// Pointers are dereferenced first; a string names a cell directly.
func resolveCell(v forestx.RtValue, ctx forestx.TreeContextRef) (forestx.RtValue, error) {
	cv, err := v.Cast(ctx)
	if err != nil {
		return forestx.RtValue{}, err
	}
	if key, ok := cv.AsString(); ok {
		cell, found := ctx.BB().Get(key)
		if !found {
			return forestx.RtValue{}, forestx.NewRuntimeError(forestx.Unexpected, "the key %s is not found in the blackboard", key)
		}
		return cell, nil
	}
	return cv, nil
}
