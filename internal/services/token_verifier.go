package services

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Verification failure kinds. All of them are surfaced to clients as
// unauthenticated; the distinction exists for logging and diagnostics only.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token signature is invalid")
)

// TokenVerifier validates bearer tokens signed by the external identity
// service and extracts identity claims from them. Verification is a pure
// function of (token, secret, algorithm, current time): no network calls,
// no caching, no retries. The secret is immutable, so a single verifier is
// safe to share across concurrent requests.
type TokenVerifier struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenVerifier creates a TokenVerifier for the given shared secret and
// signing algorithm name (e.g. "HS256"). Secret and algorithm must match the
// external issuer's signing configuration exactly; a mismatch is only
// observable as verification failures.
func NewTokenVerifier(secret, algorithm string) *TokenVerifier {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenVerifier{
		secret: []byte(secret),
		method: method,
	}
}

// Verify checks the token's signature and expiry and returns the identity
// claims it carries. The input is the raw token string, already stripped of
// the "Bearer " scheme prefix.
func (v *TokenVerifier) Verify(tokenString string) (*models.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != v.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claimsFromPayload(payload), nil
}

// classifyTokenError maps jwt-go's validation bitmask onto the verifier's
// failure taxonomy. Anything unrecognized counts as a bad signature.
func classifyTokenError(err error) error {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		switch {
		case ve.Errors&jwt.ValidationErrorMalformed != 0:
			return ErrTokenMalformed
		case ve.Errors&jwt.ValidationErrorExpired != 0:
			return ErrTokenExpired
		}
	}
	return ErrTokenInvalid
}

// claimsFromPayload resolves the two payload shapes the issuer may produce:
// {iat, exp, data: {id, username, email, role}} with claims nested under
// "data", or a flat {user_id, role, ...}. The shape is resolved once here so
// downstream code only ever sees models.Claims.
func claimsFromPayload(payload jwt.MapClaims) *models.Claims {
	if data, ok := payload["data"].(map[string]interface{}); ok {
		return &models.Claims{
			UserID:   claimInt64(data["id"]),
			Role:     claimString(data["role"]),
			Username: claimString(data["username"]),
			Email:    claimString(data["email"]),
		}
	}
	return &models.Claims{
		UserID:   claimInt64(payload["user_id"]),
		Role:     claimString(payload["role"]),
		Username: claimString(payload["username"]),
		Email:    claimString(payload["email"]),
	}
}

// claimInt64 coerces a decoded JSON claim value to an integer user id.
// JSON numbers arrive as float64 from the decoder.
func claimInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

func claimString(v interface{}) string {
	s, _ := v.(string)
	return s
}
