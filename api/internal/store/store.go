package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

var ErrNotFound = sql.ErrNoRows

const schema = `
create table if not exists users (
	id         bigint primary key,
	name       text not null default '',
	created_at timestamptz not null default now()
);

create table if not exists rooms (
	user_id         bigint primary key references users(id),
	image_path      text not null,
	width           int not null default 0,
	height          int not null default 0,
	objects         jsonb not null default '[]',
	completed_tasks int not null default 0,
	updated_at      timestamptz not null default now()
);

create table if not exists drawings (
	id              bigserial primary key,
	user_id         bigint references users(id),
	image_path      text not null,
	description     text not null default '',
	detected_object text not null default '',
	created_at      timestamptz not null default now()
);
create index if not exists drawings_user_created_idx on drawings(user_id, created_at desc);

create table if not exists activity_log (
	id            bigserial primary key,
	user_id       bigint not null,
	activity_type text not null,
	details       jsonb,
	created_at    timestamptz not null default now()
);`

// Open connects through pgx and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	// connection pool tune (нагрузка до ~20 rps)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

// Migrate creates the tables if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func ensureUser(ctx context.Context, ex interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, userID int64) error {
	const q = `insert into users(id) values ($1) on conflict (id) do nothing`
	_, err := ex.ExecContext(ctx, q, userID)
	return err
}
