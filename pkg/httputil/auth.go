package httputil

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// IdentityKey is the request user-value under which the authenticated
// caller identity is stored.
const IdentityKey = "identityId"

// IdentityClaims are the JWT claims issued by the authentication flow
type IdentityClaims struct {
	jwt.RegisteredClaims
	IdentityID string `json:"identityId"`
}

// CreateIdentityToken issues a signed JWT for the given identity
func CreateIdentityToken(identityID, secret string, expiration time.Duration) (string, error) {
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
		IdentityID: identityID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseIdentityToken validates a JWT and returns the identity it was issued for
func ParseIdentityToken(tokenString, secret string) (string, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid || claims.IdentityID == "" {
		return "", fmt.Errorf("invalid token")
	}

	return claims.IdentityID, nil
}

// NewJWTMiddleware authenticates requests with a Bearer token and stores
// the caller identity in the request context.
func NewJWTMiddleware(secret string, logger zerolog.Logger) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			header := string(ctx.Request.Header.Peek("Authorization"))
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				WriteError(ctx, fasthttp.StatusUnauthorized, "not authenticated")
				return
			}

			identityID, err := ParseIdentityToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				logger.Debug().Err(err).Msg("token validation failed")
				WriteError(ctx, fasthttp.StatusUnauthorized, "not authenticated")
				return
			}

			ctx.SetUserValue(IdentityKey, identityID)
			next(ctx)
		}
	}
}

// CallerIdentity returns the authenticated identity of the request, if any
func CallerIdentity(ctx *fasthttp.RequestCtx) string {
	identityID, _ := ctx.UserValue(IdentityKey).(string)
	return identityID
}
