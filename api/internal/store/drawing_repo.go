package store

import (
	"context"
	"database/sql"
	"time"
)

// Drawing: рисунок ребёнка. UserID 0 означает «без пользователя».
type Drawing struct {
	ID             int64
	UserID         int64
	ImagePath      string
	Description    string
	DetectedObject string
	CreatedAt      time.Time
}

type DrawingRepo struct{ DB *sql.DB }

func NewDrawingRepo(db *sql.DB) *DrawingRepo { return &DrawingRepo{DB: db} }

func (r *DrawingRepo) EnsureUser(ctx context.Context, userID int64) error {
	return ensureUser(ctx, r.DB, userID)
}

func (r *DrawingRepo) UserExists(ctx context.Context, userID int64) (bool, error) {
	const q = `select exists(select 1 from users where id = $1)`
	var ok bool
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&ok)
	return ok, err
}

// Create вставляет запись и возвращает её с id и created_at.
func (r *DrawingRepo) Create(ctx context.Context, d Drawing) (Drawing, error) {
	const q = `
insert into drawings(user_id, image_path, description, detected_object)
values ($1,$2,$3,$4)
returning id, created_at`
	var uid sql.NullInt64
	if d.UserID != 0 {
		uid = sql.NullInt64{Int64: d.UserID, Valid: true}
	}
	if err := r.DB.QueryRowContext(ctx, q, uid, d.ImagePath, d.Description, d.DetectedObject).Scan(&d.ID, &d.CreatedAt); err != nil {
		return Drawing{}, err
	}
	return d, nil
}

// Get возвращает ErrNotFound, если записи нет.
func (r *DrawingRepo) Get(ctx context.Context, id int64) (Drawing, error) {
	const q = `
select id, coalesce(user_id,0), image_path, description, detected_object, created_at
from drawings
where id = $1`
	var d Drawing
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.UserID, &d.ImagePath, &d.Description, &d.DetectedObject, &d.CreatedAt)
	return d, err
}

// ListByUser: новые сверху.
func (r *DrawingRepo) ListByUser(ctx context.Context, userID int64) ([]Drawing, error) {
	const q = `
select id, coalesce(user_id,0), image_path, description, detected_object, created_at
from drawings
where user_id = $1
order by created_at desc, id desc`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Drawing
	for rows.Next() {
		var d Drawing
		if err := rows.Scan(&d.ID, &d.UserID, &d.ImagePath, &d.Description, &d.DetectedObject, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
