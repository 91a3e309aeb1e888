package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGamesAlwaysSeedBypassesStore(t *testing.T) {
	tg := newTestGateway(Config{GamesPolicy: types.PolicyAlwaysSeed})
	ctx := context.Background()

	stored, err := tg.games.Insert(ctx, types.Game{Title: "Stored Game"})
	require.NoError(t, err)

	games := tg.gw.ListGames(ctx)
	assert.Equal(t, SeedGames(), games)
	for _, game := range games {
		assert.NotEqual(t, stored.ID, game.ID)
	}
}

func TestListGamesReadThrough(t *testing.T) {
	tg := newTestGateway(Config{GamesPolicy: types.PolicyReadThrough})
	ctx := context.Background()

	// Empty store falls back to the seed set.
	assert.Equal(t, SeedGames(), tg.gw.ListGames(ctx))

	stored, err := tg.games.Insert(ctx, types.Game{Title: "Stored Game"})
	require.NoError(t, err)
	games := tg.gw.ListGames(ctx)
	require.Len(t, games, 1)
	assert.Equal(t, stored.ID, games[0].ID)

	// An erroring store read also falls back, it never propagates.
	tg.games.listErr = errors.New("connection refused")
	assert.Equal(t, SeedGames(), tg.gw.ListGames(ctx))
}

func TestSaveGameInsertsNewRecord(t *testing.T) {
	tg := newTestGateway(DefaultConfig())

	saved, err := tg.gw.SaveGame(context.Background(), types.NewRecord(), types.Game{
		Title: "Fresh Game",
		Tags:  []string{"New"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Fresh Game", saved.Title)
}

func TestSaveGameUpdatesExistingRecord(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	stored, err := tg.games.Insert(ctx, types.Game{Title: "Original"})
	require.NoError(t, err)

	saved, err := tg.gw.SaveGame(ctx, types.ExistingRecord(stored.ID), types.Game{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, saved.ID)
	assert.Equal(t, "Renamed", tg.games.games[stored.ID].Title)
}

func TestSaveGameUpdateMissingRecord(t *testing.T) {
	tg := newTestGateway(DefaultConfig())

	_, err := tg.gw.SaveGame(context.Background(), types.ExistingRecord("absent"), types.Game{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrUpdate)
}

func TestSaveGameInsertFailure(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.games.insertErr = errors.New("constraint violated")

	_, err := tg.gw.SaveGame(context.Background(), types.NewRecord(), types.Game{Title: "Doomed"})
	assert.ErrorIs(t, err, ErrWrite)
}

func TestSaveGameRowTooLarge(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.games.insertErr = store.ErrRowTooLarge

	_, err := tg.gw.SaveGame(context.Background(), types.NewRecord(), types.Game{Title: "Huge"})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestSaveGameInlineImageLimit(t *testing.T) {
	tg := newTestGateway(Config{MaxInlineImageBytes: 64})
	ctx := context.Background()

	oversized := "data:image/png;base64," + strings.Repeat("A", 128)
	_, err := tg.gw.SaveGame(ctx, types.NewRecord(), types.Game{Title: "Big", ImageURL: oversized})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	// Non-data URLs of any length are fine: only inline payloads count.
	longURL := "https://cdn.example.com/" + strings.Repeat("a", 512)
	_, err = tg.gw.SaveGame(ctx, types.NewRecord(), types.Game{Title: "Linked", ImageURL: longURL})
	assert.NoError(t, err)

	// Small inline payloads pass.
	_, err = tg.gw.SaveGame(ctx, types.NewRecord(), types.Game{Title: "Small", ImageURL: "data:image/png;base64,AAAA"})
	assert.NoError(t, err)
}

func TestDeleteGameIdempotent(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	ctx := context.Background()

	stored, err := tg.games.Insert(ctx, types.Game{Title: "Short-lived"})
	require.NoError(t, err)

	require.NoError(t, tg.gw.DeleteGame(ctx, stored.ID))
	// A second delete of the same id is still success.
	require.NoError(t, tg.gw.DeleteGame(ctx, stored.ID))
}

func TestDeleteGameStoreFailure(t *testing.T) {
	tg := newTestGateway(DefaultConfig())
	tg.games.deleteErr = errors.New("connection reset")

	err := tg.gw.DeleteGame(context.Background(), "any")
	assert.ErrorIs(t, err, ErrDelete)
}

func TestSeedGamesReturnsCopies(t *testing.T) {
	first := SeedGames()
	first[0].Title = "mutated"
	assert.NotEqual(t, "mutated", SeedGames()[0].Title)
}
