package types

// SourcePolicy selects where a catalog listing is read from.
//
// The games and changelog feeds deliberately differ: games are served from
// the built-in seed set regardless of store contents, while changelogs read
// the store and fall back to seeds. Modelling that asymmetry as per-entity
// configuration keeps it visible and testable instead of burying it in
// divergent code paths.
type SourcePolicy string

const (
	// PolicyAlwaysSeed serves the built-in seed set unconditionally. The
	// store remains write-only for the entity: saves still persist, they
	// just do not surface in listings.
	PolicyAlwaysSeed SourcePolicy = "always-seed"

	// PolicyReadThrough reads the store and substitutes the seed set when
	// the read errors or returns no rows.
	PolicyReadThrough SourcePolicy = "read-through"
)

// Valid reports whether p is one of the known policies.
func (p SourcePolicy) Valid() bool {
	return p == PolicyAlwaysSeed || p == PolicyReadThrough
}
