package gateway

import "errors"

// Error taxonomy surfaced to the UI layer. Every mutating operation reports
// one of these kinds so the caller can present the specific failure instead
// of a generic message. Provider details are attached by wrapping; inspect
// with errors.Is.
var (
	// ErrAuth covers rejected credentials; the wrapped message carries the
	// provider's own description.
	ErrAuth = errors.New("authentication failed")

	// ErrConfirmationRequired means signup created the credential but the
	// provider withheld the session pending out-of-band confirmation. No
	// profile row is created in this state.
	ErrConfirmationRequired = errors.New("account confirmation required before login")

	// ErrProfileMissing means a session is established but no profile row
	// exists for its user: inconsistent state, surfaced rather than
	// auto-repaired.
	ErrProfileMissing = errors.New("profile not found for authenticated user")

	// ErrProfileCreation means the credential record was created but the
	// profile insert failed, leaving an orphaned credential.
	ErrProfileCreation = errors.New("profile creation failed after signup")

	// ErrPayloadTooLarge means an inline asset exceeds the store's row or
	// field size limit; the caller should suggest a smaller image or a URL
	// reference instead.
	ErrPayloadTooLarge = errors.New("inline payload too large")

	// ErrAuthorization means the caller lacks the role an operation
	// requires.
	ErrAuthorization = errors.New("operation requires Admin role")

	// Generic store mutation failures.
	ErrWrite  = errors.New("store write failed")
	ErrUpdate = errors.New("store update failed")
	ErrDelete = errors.New("store delete failed")
)
