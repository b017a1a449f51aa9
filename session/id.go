package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// idSalt is a fixed, non-secret salt mixed into the id derivation so that
// session ids are not bare hashes of well-known subject values. Changing it
// invalidates every existing session key, so don't.
const idSalt = "goidc-session/v1"

// idLength is the length of a derived session id: a sha256 digest, hex encoded.
const idLength = 2 * sha256.Size

// DeriveID derives the session id for the supplied subject claim. The
// derivation is a one-way, deterministic transform; the same subject always
// yields the same id, in this process or any other, which is what makes
// re-authentication overwrite a prior session instead of duplicating it.
func DeriveID(subject string) (string, error) {
	if subject == "" {
		return "", newError(CodeInvalidSubject, "DeriveID", "invalid subject",
			"subject claim is empty; cannot derive a session id", nil)
	}
	sum := sha256.Sum256([]byte(idSalt + ":" + subject))
	return hex.EncodeToString(sum[:]), nil
}

// ValidID reports whether candidate has the shape of an id produced by
// DeriveID. It is a structural check only; it never errors & says nothing
// about whether a session actually exists for the id.
func ValidID(candidate string) bool {
	if len(candidate) != idLength {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		c := candidate[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
