package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ironstrike-games/studio-api/types"
)

// ProfileRepository handles persistence for user profiles.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (types.UserProfile, error) {
	const query = `
		SELECT id, name, email, role, avatar_url, join_date
		FROM profiles
		WHERE id = $1`
	var profile types.UserProfile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&profile.AvatarURL,
		&profile.JoinDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.UserProfile{}, ErrNotFound
		}
		return types.UserProfile{}, err
	}
	return profile, nil
}

// Count returns the number of profile rows. Signup reads it before inserting
// to decide the first-user-admin promotion.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM profiles`
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProfileRepository) Insert(ctx context.Context, profile types.UserProfile) error {
	const query = `
		INSERT INTO profiles (id, name, email, role, avatar_url, join_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.Role,
		profile.AvatarURL,
		profile.JoinDate,
	)
	return mapWriteError(err)
}

// UpdateNameAvatar updates the two caller-mutable profile fields. Email and
// role are not reachable through this path.
func (r *ProfileRepository) UpdateNameAvatar(ctx context.Context, id, name, avatarURL string) error {
	const query = `
		UPDATE profiles
		SET name = $1,
			avatar_url = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, name, avatarURL, id)
	if err != nil {
		return err
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

func (r *ProfileRepository) ListAll(ctx context.Context) ([]types.UserProfile, error) {
	const query = `
		SELECT id, name, email, role, avatar_url, join_date
		FROM profiles
		ORDER BY join_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]types.UserProfile, 0)
	for rows.Next() {
		var profile types.UserProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.Name,
			&profile.Email,
			&profile.Role,
			&profile.AvatarURL,
			&profile.JoinDate,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Delete removes a profile row. The role predicate mirrors the row-level
// policy: Admin rows are never deletable through this statement, even if the
// caller's own check was bypassed. Zero rows affected is success.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id = $1 AND role <> 'Admin'`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
