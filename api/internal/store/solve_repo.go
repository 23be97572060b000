package store

import (
	"context"
	"database/sql"

	"screen-solve/api/internal/solve"
)

// SolveRepo appends finished solves to solve_journal.
type SolveRepo struct{ DB *sql.DB }

func NewSolveRepo(db *sql.DB) *SolveRepo { return &SolveRepo{DB: db} }

var _ solve.Journal = (*SolveRepo)(nil)

const createSolveJournal = `
create table if not exists solve_journal (
    id           bigserial primary key,
    created_at   timestamptz not null default now(),
    request_id   text not null default '',
    image_hash   text not null,
    image_bytes  integer not null,
    engine       text not null,
    model        text not null,
    outcome      text not null,
    answer       text,
    confidence   double precision,
    rationale    text,
    error        text,
    latency_ms   bigint not null
);
create index if not exists solve_journal_image_hash_idx on solve_journal (image_hash);`

// Migrate creates solve_journal if it does not exist yet.
func (r *SolveRepo) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, createSolveJournal)
	return err
}

// Record inserts one row. Result columns stay null for failed solves.
func (r *SolveRepo) Record(ctx context.Context, rec solve.Record) error {
	const q = `
insert into solve_journal(created_at, request_id, image_hash, image_bytes, engine, model,
                          outcome, answer, confidence, rationale, error, latency_ms)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	var (
		answer, rationale sql.NullString
		confidence        sql.NullFloat64
		errText           sql.NullString
	)
	if rec.Outcome == solve.KindOK {
		answer = sql.NullString{String: rec.Result.Answer, Valid: true}
		rationale = sql.NullString{String: rec.Result.Rationale, Valid: true}
		confidence = sql.NullFloat64{Float64: rec.Result.Confidence, Valid: true}
	}
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, q,
		rec.CreatedAt, rec.RequestID, rec.ImageHash, rec.ImageBytes, rec.Engine, rec.Model,
		rec.Outcome.String(), answer, confidence, rationale, errText, rec.Latency.Milliseconds())
	return err
}
