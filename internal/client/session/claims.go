package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/golang-jwt/jwt/v5"
)

// UserIdentity is what the client knows about the signed-in user. It is
// derived from the token claims and never persisted on its own.
type UserIdentity struct {
	ID        int64
	Username  string
	Email     string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// DecodeResult is either Ok(identity) or Malformed(reason).
type DecodeResult struct {
	identity UserIdentity
	err      error
}

func ok(id UserIdentity) DecodeResult { return DecodeResult{identity: id} }

func malformed(reason error) DecodeResult {
	return DecodeResult{err: fmt.Errorf("%w: %w", ErrMalformedToken, reason)}
}

// OK reports whether the token decoded into a usable identity.
func (r DecodeResult) OK() bool { return r.err == nil }

// Identity returns the decoded identity; the bool mirrors OK.
func (r DecodeResult) Identity() (UserIdentity, bool) {
	return r.identity, r.err == nil
}

// Err explains why the token is malformed. It matches ErrMalformedToken.
func (r DecodeResult) Err() error { return r.err }

// Decoder reads token claims without verifying the signature. Tokens are
// verified by the API on every authenticated call; the client only needs
// to know who it is talking as.
type Decoder struct {
	parser *jwt.Parser
}

func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode never panics: every failure becomes Malformed.
func (d *Decoder) Decode(token string) DecodeResult {
	if token == "" {
		return malformed(errors.New("empty token"))
	}

	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		// Only the payload is needed, so a header the parser rejects
		// (missing or unknown alg) is not fatal.
		if claims, err = d.payloadClaims(token); err != nil {
			return malformed(err)
		}
	}

	id, err := identityFromClaims(claims)
	if err != nil {
		return malformed(err)
	}
	return ok(id)
}

// payloadClaims decodes the middle segment of token as JSON claims.
func (d *Decoder) payloadClaims(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token has %d segments, want 3", len(parts))
	}

	raw, err := d.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return claims, nil
}

// IsValid is Decode(token).OK() without keeping the claims.
func (d *Decoder) IsValid(token string) bool {
	return d.Decode(token).OK()
}

// identityClaims is the validated view of the payload.
type identityClaims struct {
	Subject  string
	Username string
	Email    string
}

func (c identityClaims) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Subject, validation.Required, is.Digit),
		validation.Field(&c.Username, validation.Length(0, 100)),
		validation.Field(&c.Email, is.Email),
	)
}

func identityFromClaims(claims jwt.MapClaims) (UserIdentity, error) {
	raw := identityClaims{
		Subject:  subjectString(claims["sub"]),
		Username: stringClaim(claims, "username"),
		Email:    stringClaim(claims, "email"),
	}
	if err := raw.Validate(); err != nil {
		return UserIdentity{}, err
	}

	id, err := strconv.ParseInt(raw.Subject, 10, 64)
	if err != nil || id <= 0 {
		return UserIdentity{}, fmt.Errorf("sub: invalid user id %q", raw.Subject)
	}

	identity := UserIdentity{ID: id, Username: raw.Username, Email: raw.Email}

	identity.Issuer, err = claims.GetIssuer()
	if err != nil {
		return UserIdentity{}, err
	}
	aud, err := claims.GetAudience()
	if err != nil {
		return UserIdentity{}, err
	}
	identity.Audience = aud

	if exp, err := claims.GetExpirationTime(); err != nil {
		return UserIdentity{}, err
	} else if exp != nil {
		identity.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err != nil {
		return UserIdentity{}, err
	} else if iat != nil {
		identity.IssuedAt = iat.Time
	}

	return identity, nil
}

// subjectString accepts the user id as a string or as a JSON number; the
// API issues it as a number.
func subjectString(v any) string {
	switch sub := v.(type) {
	case string:
		return sub
	case float64:
		if sub != float64(int64(sub)) {
			return ""
		}
		return strconv.FormatInt(int64(sub), 10)
	default:
		return ""
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
