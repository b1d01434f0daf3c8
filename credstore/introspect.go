package credstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reports the expiry claim of a JWT-shaped credential. The token
// is decoded without signature verification since the client holds no keys,
// so the result is advisory only, used for the anonymous-browsing fallback and
// diagnostics, never to gate a credential-change submit. Opaque non-JWT
// tokens report no expiry.
func ExpiresAt(c Credential) (time.Time, bool) {
	if c.Empty() {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(c), claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the credential is JWT-shaped and past its expiry
// at the given instant. Opaque tokens are never considered expired here.
func Expired(c Credential, now time.Time) bool {
	exp, ok := ExpiresAt(c)
	return ok && now.After(exp)
}
