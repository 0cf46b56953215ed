package dashboard

import "context"

type UseCase interface {
	// Refresh rebuilds the snapshot from storage and broadcasts it.
	Refresh(ctx context.Context) (*Snapshot, error)
	// Subscribe streams snapshots; the latest one, if any, is returned too.
	Subscribe() (latest *Snapshot, updates <-chan *Snapshot, cancel func())
}
