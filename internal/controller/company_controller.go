package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompanyController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Onboard(ctx *fiber.Ctx) error
}

type companyController struct {
	companyService service.ICompanyService
}

func NewCompanyController(companyService service.ICompanyService) ICompanyController {
	return &companyController{companyService: companyService}
}

func (c *companyController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/company")
	h.Use(g.Auth)
	// creation paths run before the caller owns a company
	h.Post("", c.Create)
	h.Post("/onboard", c.Onboard)
	h.Get("", g.Company, c.Show)
	h.Put("", g.Company, c.Update)
}

func (c *companyController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCompanyRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create company", res))
}

func (c *companyController) Show(ctx *fiber.Ctx) error {
	res, err := c.companyService.Show(ctx.UserContext(), serverutils.CompanyID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show company", res))
}

func (c *companyController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateCompanyRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.Update(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update company", res))
}

// Onboard takes the (possibly user-corrected) output of chat extraction.
func (c *companyController) Onboard(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ExtractedEntities
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.companyService.Onboard(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success onboard company", res))
}
