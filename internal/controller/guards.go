package controller

import (
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Guards are the middlewares a controller can put in front of its routes.
// Auth checks the bearer token; Company additionally loads the caller's
// company into ctx.Locals.
type Guards struct {
	Auth    fiber.Handler
	Company fiber.Handler
}

func NewCompanyMiddleware(companyService service.ICompanyService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := serverutils.UserID(ctx)
		if err != nil {
			return err
		}

		companyId, err := companyService.ResolveCompanyID(ctx.UserContext(), userId)
		if err != nil {
			return err
		}

		ctx.Locals(serverutils.LocalCompanyID, companyId)
		return ctx.Next()
	}
}
