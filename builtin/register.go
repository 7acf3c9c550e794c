package builtin

import "github.com/comalice/forestx"

// Canonical names of the standard data actions.
const (
	NameLock      = "lock"
	NameUnlock    = "unlock"
	NameStoreTick = "store_tick"
	NameCheckEq   = "check_eq"
	NameStoreData = "store_data"
)

// Register installs the standard data actions under their canonical names.
// GenerateData is not included: it needs a host-supplied generator.
func Register(k *forestx.ActionKeeper) {
	k.Register(NameLock, forestx.SyncAction(LockUnlockBBKey{Op: LockKey}))
	k.Register(NameUnlock, forestx.SyncAction(LockUnlockBBKey{Op: UnlockKey}))
	k.Register(NameStoreTick, forestx.SyncAction(StoreTick{}))
	k.Register(NameCheckEq, forestx.SyncAction(CheckEq{}))
	k.Register(NameStoreData, forestx.SyncAction(StoreData{}))
}
