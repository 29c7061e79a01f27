package middleware

import (
	"errors"
	"strings"

	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:18
 * @file: authorization.go
 * @description: jwt authorization
 */

// AuthorizationMiddleware jwt 鉴权，解析 userId 写入 Locals
func AuthorizationMiddleware(secretKey string, skipPaths ...string) fiber.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return http.WithRepErr(c, http.AuthorizationEmpty.Code, http.AuthorizationEmpty.Msg, c.Path())
		}

		// Bearer <token>
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return http.WithRepErr(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, jwtv5.ErrTokenExpired) {
				return http.WithRepErr(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			return http.WithRepErr(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		c.Locals(constant.USER_ID, claims.UserId)
		return c.Next()
	}
}
