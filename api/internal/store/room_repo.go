package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tidy-room/api/internal/room"
)

// RoomRepo keeps one row per user: the reference set and the completed counter.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

// GetReference читает одну строку, поэтому набор объектов всегда согласован.
func (r *RoomRepo) GetReference(ctx context.Context, userID int64) (room.Reference, error) {
	const q = `
select user_id, image_path, width, height, objects, completed_tasks, updated_at
from rooms
where user_id = $1`
	var (
		ref room.Reference
		js  []byte
	)
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(
		&ref.UserID, &ref.ImagePath, &ref.Width, &ref.Height, &js, &ref.CompletedTasks, &ref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return room.Reference{}, room.ErrNoReference
	}
	if err != nil {
		return room.Reference{}, err
	}
	if err := json.Unmarshal(js, &ref.Objects); err != nil {
		return room.Reference{}, fmt.Errorf("bad objects json for user %d: %w", userID, err)
	}
	return ref, nil
}

// ReplaceReference перезаписывает набор целиком в одной транзакции; счётчик не трогаем.
func (r *RoomRepo) ReplaceReference(ctx context.Context, ref room.Reference) error {
	objs := ref.Objects
	if objs == nil {
		objs = []room.ReferenceObject{}
	}
	js, err := json.Marshal(objs)
	if err != nil {
		return fmt.Errorf("marshal objects: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := ensureUser(ctx, tx, ref.UserID); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	const q = `
insert into rooms(user_id, image_path, width, height, objects, updated_at)
values ($1,$2,$3,$4,$5,now())
on conflict (user_id)
do update set image_path=excluded.image_path,
              width=excluded.width,
              height=excluded.height,
              objects=excluded.objects,
              updated_at=now()`
	if _, err := tx.ExecContext(ctx, q, ref.UserID, ref.ImagePath, ref.Width, ref.Height, js); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RoomRepo) Completed(ctx context.Context, userID int64) (int, error) {
	const q = `select completed_tasks from rooms where user_id = $1`
	var n int
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func (r *RoomRepo) Increment(ctx context.Context, userID int64) (int, error) {
	const q = `update rooms set completed_tasks = completed_tasks + 1 where user_id = $1 returning completed_tasks`
	var n int
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, room.ErrNoReference
	}
	return n, err
}

func (r *RoomRepo) Reset(ctx context.Context, userID int64) error {
	const q = `update rooms set completed_tasks = 0 where user_id = $1`
	res, err := r.DB.ExecContext(ctx, q, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return room.ErrNoReference
	}
	return nil
}
