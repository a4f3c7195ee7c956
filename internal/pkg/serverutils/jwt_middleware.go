package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware requires a valid bearer token and stashes the caller's
// id under Locals("user_id") as a string.
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearerToken(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, err.Error()))
	}
	ctx.Locals("user_id", claims["user_id"])
	return ctx.Next()
}

// OptionalJwtMiddleware decodes the bearer token when present but never
// rejects the request. Anonymous visitors pass through with no user_id
// local, which downstream code treats as not signed in.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearerToken(ctx)
	if err == nil {
		ctx.Locals("user_id", claims["user_id"])
	}
	return ctx.Next()
}

func parseBearerToken(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
	}
	return claims, nil
}
