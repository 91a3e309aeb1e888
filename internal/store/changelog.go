package store

import (
	"context"
	"database/sql"

	"github.com/ironstrike-games/studio-api/types"
)

// ChangelogRepository handles persistence for changelog entries.
type ChangelogRepository struct {
	db *sql.DB
}

func NewChangelogRepository(db *sql.DB) *ChangelogRepository {
	return &ChangelogRepository{db: db}
}

// ListByDateDesc returns entries ordered by the date column descending.
// Date is free text, so the ordering is the store's string ordering, not
// chronological.
func (r *ChangelogRepository) ListByDateDesc(ctx context.Context) ([]types.Changelog, error) {
	const query = `
		SELECT id, title, version, date, description, type
		FROM changelogs
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]types.Changelog, 0)
	for rows.Next() {
		var log types.Changelog
		if err := rows.Scan(
			&log.ID,
			&log.Title,
			&log.Version,
			&log.Date,
			&log.Description,
			&log.Type,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Insert persists a new entry and returns it with the store-assigned id.
func (r *ChangelogRepository) Insert(ctx context.Context, log types.Changelog) (types.Changelog, error) {
	const query = `
		INSERT INTO changelogs (title, version, date, description, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		log.Title,
		log.Version,
		log.Date,
		log.Description,
		log.Type,
	).Scan(&log.ID); err != nil {
		return types.Changelog{}, mapWriteError(err)
	}
	return log, nil
}

func (r *ChangelogRepository) Update(ctx context.Context, log types.Changelog) error {
	const query = `
		UPDATE changelogs
		SET title = $1,
			version = $2,
			date = $3,
			description = $4,
			type = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		log.Title,
		log.Version,
		log.Date,
		log.Description,
		log.Type,
		log.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an entry by id. Zero rows affected is success.
func (r *ChangelogRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM changelogs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteAllExcept removes every row whose id differs from the given one.
func (r *ChangelogRepository) DeleteAllExcept(ctx context.Context, id string) error {
	const query = `DELETE FROM changelogs WHERE id <> $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
