package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICapTableController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type capTableController struct {
	capTableService service.ICapTableService
}

func NewCapTableController(capTableService service.ICapTableService) ICapTableController {
	return &capTableController{capTableService: capTableService}
}

func (c *capTableController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/cap-table")
	h.Use(g.Auth, g.Company)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *capTableController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCapTableEntryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.capTableService.Create(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create cap table entry", res))
}

func (c *capTableController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.capTableService.GetAll(ctx.UserContext(), serverutils.CompanyID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cap table", res))
}

func (c *capTableController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCapTableEntryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.capTableService.Update(ctx.UserContext(), serverutils.CompanyID(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update cap table entry", res))
}

func (c *capTableController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.capTableService.Delete(ctx.UserContext(), serverutils.CompanyID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete cap table entry", nil))
}
