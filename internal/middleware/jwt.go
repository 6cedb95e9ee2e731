package middleware

import (
	"context"
	"net/http"

	"roomly/internal/common"
	"roomly/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration used on scoped route groups.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// UserContext copies the validated token's subject into the request context.
// It runs after echo-jwt, which stores the parsed token under the "user" key.
func UserContext(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing user_id in token")
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)

			homeTenantID, err := userRepo.GetTenantIDByUserID(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			// A resolved tenant (from the Host header, an explicit slug or
			// the X-Tenant-ID header) must be the user's own organization.
			// A token never grants access across tenants.
			if tenantID, ok := common.GetTenantIDFromContext(ctx); ok {
				if tenantID != homeTenantID {
					return echo.NewHTTPError(http.StatusForbidden, "User does not belong to this organization")
				}
			} else {
				ctx = context.WithValue(ctx, common.TenantIDKey, homeTenantID)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
