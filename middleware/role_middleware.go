package middleware

import (
	authutils "recruit-flow-backend/lib/utils/auth-utils"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.UserRoleAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

// PanelRequired admits panel members and admins.
func PanelRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		role := GetUserRole(ctx)
		if role != models.UserRoleAdmin && role != models.UserRolePanel {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}
