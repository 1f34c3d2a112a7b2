package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInvestorController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Add(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type investorController struct {
	investorService service.IInvestorService
}

func NewInvestorController(investorService service.IInvestorService) IInvestorController {
	return &investorController{investorService: investorService}
}

func (c *investorController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/investors")
	h.Use(g.Auth, g.Company)
	h.Get("", c.GetAll)
	h.Post("", c.Add)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

// Add also drafts the investor's SAFE; the response carries its document id
// when drafting succeeded.
func (c *investorController) Add(ctx *fiber.Ctx) error {
	var req dto.AddInvestorRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.investorService.Add(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Investor added", res))
}

func (c *investorController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.investorService.GetAll(ctx.UserContext(), serverutils.CompanyID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get investors", res))
}

func (c *investorController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.investorService.Show(ctx.UserContext(), serverutils.CompanyID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show investor", res))
}

func (c *investorController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateInvestorRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.investorService.Update(ctx.UserContext(), serverutils.CompanyID(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update investor", res))
}

func (c *investorController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.investorService.Delete(ctx.UserContext(), serverutils.CompanyID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete investor", nil))
}
