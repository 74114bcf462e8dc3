// apps/go-server/internal/cookie/cookie.go
//
// Cookie transport for game tokens.
//
// With a secret configured, tokens are wrapped in an HS256 JWT so a client
// cannot hand-edit its board; the token itself is still readable. The HMAC key
// is derived from the secret with HKDF so the raw secret can be shared with
// other uses (daily salt) without reusing key material. No time claims are set:
// sealing the same token twice yields the same cookie value.
//
// Without a secret the engine token is stored as-is (it is already cookie-safe).

package cookie

import (
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	tokenClaim = "g"
	hkdfInfo   = "sverdle cookie"

	// MaxAge keeps a board across browser restarts.
	MaxAge = 30 * 24 * time.Hour
)

var errNoToken = errors.New("cookie: sealed value carries no token")

// Sealer wraps and unwraps tokens. The zero value passes tokens through.
type Sealer struct {
	key []byte
}

// NewSealer derives a signing key from secret. An empty secret disables sealing.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return &Sealer{}, nil
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, err
	}
	return &Sealer{key: key}, nil
}

// Enabled reports whether tokens are signed.
func (s *Sealer) Enabled() bool { return len(s.key) > 0 }

// Seal returns the cookie value for token.
func (s *Sealer) Seal(token string) (string, error) {
	if !s.Enabled() {
		return token, nil
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{tokenClaim: token})
	return t.SignedString(s.key)
}

// Open returns the token inside value, or an error when the value was not
// produced by Seal with the same key.
func (s *Sealer) Open(value string) (string, error) {
	if !s.Enabled() {
		return value, nil
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	tok, _ := claims[tokenClaim].(string)
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}

// Jar reads and writes sealed game cookies.
type Jar struct {
	sealer *Sealer
	secure bool
}

// NewJar builds a Jar. In production cookies are Secure and SameSite=None so
// a separately hosted client can send them.
func NewJar(sealer *Sealer, production bool) *Jar {
	return &Jar{sealer: sealer, secure: production}
}

// Load returns the token stored under name, or "" when the cookie is missing
// or fails verification. Callers treat "" as "start a new game".
func (j *Jar) Load(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", nil
	}
	return j.sealer.Open(c.Value)
}

// Save writes token under name.
func (j *Jar) Save(w http.ResponseWriter, name, token string) error {
	v, err := j.sealer.Seal(token)
	if err != nil {
		return err
	}
	http.SetCookie(w, j.cookie(name, v, int(MaxAge.Seconds())))
	return nil
}

// Clear deletes the cookie.
func (j *Jar) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, j.cookie(name, "", -1))
}

func (j *Jar) cookie(name, value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if j.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: sameSite,
		MaxAge:   maxAge,
	}
}
