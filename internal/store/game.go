package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ironstrike-games/studio-api/types"
)

// GameRepository handles persistence for catalog games.
type GameRepository struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]types.Game, error) {
	const query = `
		SELECT id, title, description, image_url, tags, players, play_url
		FROM games
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]types.Game, 0)
	for rows.Next() {
		var game types.Game
		var tagsJSON []byte
		if err := rows.Scan(
			&game.ID,
			&game.Title,
			&game.Description,
			&game.ImageURL,
			&tagsJSON,
			&game.Players,
			&game.PlayURL,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(tagsJSON, &game.Tags)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// Insert persists a new game and returns it with the store-assigned id.
func (r *GameRepository) Insert(ctx context.Context, game types.Game) (types.Game, error) {
	tagsJSON, err := json.Marshal(game.Tags)
	if err != nil {
		return types.Game{}, err
	}

	const query = `
		INSERT INTO games (title, description, image_url, tags, players, play_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		game.Title,
		game.Description,
		game.ImageURL,
		tagsJSON,
		game.Players,
		game.PlayURL,
	).Scan(&game.ID); err != nil {
		return types.Game{}, mapWriteError(err)
	}
	return game, nil
}

func (r *GameRepository) Update(ctx context.Context, game types.Game) error {
	tagsJSON, err := json.Marshal(game.Tags)
	if err != nil {
		return err
	}

	const query = `
		UPDATE games
		SET title = $1,
			description = $2,
			image_url = $3,
			tags = $4,
			players = $5,
			play_url = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		game.Title,
		game.Description,
		game.ImageURL,
		tagsJSON,
		game.Players,
		game.PlayURL,
		game.ID,
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

// Delete removes a game by id. Zero rows affected is success.
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM games WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteAllExcept removes every row whose id differs from the given one.
// Called with an impossible id it empties the table while still carrying a
// predicate, which row-level delete policies require.
func (r *GameRepository) DeleteAllExcept(ctx context.Context, id string) error {
	const query = `DELETE FROM games WHERE id <> $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
