package types

// Game is one entry in the studio's public catalog.
type Game struct {
	// ID is empty for records that have never been persisted; otherwise it
	// is the store-assigned identifier.
	ID string `json:"id" db:"id"`

	// Title is the display name of the game.
	Title string `json:"title" db:"title"`

	// Description is the marketing blurb shown on the catalog card.
	Description string `json:"description" db:"description"`

	// ImageURL points at the cover art. May be an external URL, an asset
	// URL returned by the upload endpoint, or a small inline data URL.
	ImageURL string `json:"imageUrl" db:"image_url"`

	// Tags are display labels in insertion order.
	Tags []string `json:"tags" db:"tags"`

	// Players is a free-text status label ("Active", "Testing", ...).
	Players string `json:"players,omitempty" db:"players"`

	// PlayURL links to the hosted game.
	PlayURL string `json:"playUrl,omitempty" db:"play_url"`
}
