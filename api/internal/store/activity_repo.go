package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type Activity struct {
	UserID    int64
	Type      string
	Details   map[string]any
	Timestamp time.Time
}

type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

func (r *ActivityRepo) Log(ctx context.Context, a Activity) error {
	js, _ := json.Marshal(a.Details)
	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	const q = `insert into activity_log(user_id, activity_type, details, created_at) values ($1,$2,$3,$4)`
	_, err := r.DB.ExecContext(ctx, q, a.UserID, a.Type, js, ts)
	return err
}
