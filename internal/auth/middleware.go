package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/jxnhiro/blog-api/internal/errors"
)

const userIDKey = "userID"

type userIDCtxKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(string)
	return id, ok && id != ""
}

// UserID returns the authenticated user id from the echo context, if any.
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(userIDKey).(string)
	return id, ok && id != ""
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// resolved user id to the request context.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.New(apperrors.Unauthenticated, "not authenticated")
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return
			}
			attachUserID(c, claims.UserID)
		},
	})
}

// OptionalAuth attaches the user id when a valid bearer token is present and
// lets the request through either way. Handlers and resolvers behind it
// enforce their own authentication requirements.
func OptionalAuth(jwtService *JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}
			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				return next(c)
			}
			attachUserID(c, claims.UserID)
			return next(c)
		}
	}
}

func attachUserID(c echo.Context, userID string) {
	c.Set(userIDKey, userID)
	c.SetRequest(c.Request().WithContext(WithUserID(c.Request().Context(), userID)))
}
