package room

import "context"

// ReferenceStore keeps one reference set per user. GetReference returns a
// consistent snapshot and ErrNoReference when nothing was captured yet;
// ReplaceReference swaps the whole set atomically and keeps the completed
// counter.
type ReferenceStore interface {
	GetReference(ctx context.Context, userID int64) (Reference, error)
	ReplaceReference(ctx context.Context, ref Reference) error
}

// ProgressStore is the per-user completed-task counter. Increment and Reset
// return ErrNoReference when the user has no room.
type ProgressStore interface {
	Completed(ctx context.Context, userID int64) (int, error)
	Increment(ctx context.Context, userID int64) (int, error)
	Reset(ctx context.Context, userID int64) error
}
