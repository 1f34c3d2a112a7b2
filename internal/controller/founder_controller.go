package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFounderController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Invite(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type founderController struct {
	founderService service.IFounderService
}

func NewFounderController(founderService service.IFounderService) IFounderController {
	return &founderController{founderService: founderService}
}

func (c *founderController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/founders")
	h.Use(g.Auth, g.Company)
	h.Get("", c.GetAll)
	h.Post("", c.Invite)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Patch("/:id/status", c.UpdateStatus)
	h.Delete("/:id", c.Delete)
}

func (c *founderController) Invite(ctx *fiber.Ctx) error {
	var req dto.InviteFounderRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.founderService.Invite(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Founder invited", res))
}

func (c *founderController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.founderService.GetAll(ctx.UserContext(), serverutils.CompanyID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get founders", res))
}

func (c *founderController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.founderService.Show(ctx.UserContext(), serverutils.CompanyID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show founder", res))
}

func (c *founderController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateFounderRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.founderService.Update(ctx.UserContext(), serverutils.CompanyID(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update founder", res))
}

func (c *founderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.founderService.UpdateStatus(ctx.UserContext(), serverutils.CompanyID(ctx), id, req.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update founder status", res))
}

func (c *founderController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.founderService.Delete(ctx.UserContext(), serverutils.CompanyID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete founder", nil))
}
