package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"streetscout/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) SaveAnalysis(ctx context.Context, a domain.Analysis) error {
	demos, err := json.Marshal(a.TargetDemographics)
	if err != nil {
		return err
	}
	rec, err := json.Marshal(a.Recommendation)
	if err != nil {
		return err
	}
	// created_at goes through COALESCE so a zero time defers to the DB clock.
	var created any
	if !a.CreatedAt.IsZero() {
		created = a.CreatedAt.UTC()
	}
	_, err = r.db.ExecContext(ctx, upsertAnalysisSQL,
		a.ID,
		a.Location,
		a.Coord.Lat,
		a.Coord.Lng,
		string(a.BusinessType),
		string(demos),
		string(rec),
		created,
	)
	return err
}

func (r *Repo) InsertEvent(ctx context.Context, eventType string, data map[string]any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertEventSQL, eventType, string(b))
	return err
}

func (r *Repo) LogMiss(ctx context.Context, endpoint string, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, endpoint, status, reason)
	return err
}

func (r *Repo) GetAnalysis(ctx context.Context, id string) (domain.Analysis, error) {
	row := r.db.QueryRowContext(ctx, getAnalysisSQL, id)

	var a domain.Analysis
	var bt string
	var demosJSON, recJSON []byte
	var created sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.Location,
		&a.Coord.Lat,
		&a.Coord.Lng,
		&bt,
		&demosJSON,
		&recJSON,
		&created,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Analysis{}, domain.ErrNotFound
		}
		return domain.Analysis{}, err
	}

	a.BusinessType = domain.BusinessType(bt)
	_ = json.Unmarshal(demosJSON, &a.TargetDemographics)
	if err := json.Unmarshal(recJSON, &a.Recommendation); err != nil {
		return domain.Analysis{}, err
	}
	if created.Valid {
		a.CreatedAt = created.Time.UTC()
	}
	return a, nil
}
