package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/entity"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/repository/contract"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Create(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	SendForSignature(ctx *fiber.Ctx) error
	GetSignatures(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService  service.IDocumentService
	signatureService service.ISignatureService
}

func NewDocumentController(documentService service.IDocumentService, signatureService service.ISignatureService) IDocumentController {
	return &documentController{
		documentService:  documentService,
		signatureService: signatureService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/documents")
	h.Use(g.Auth, g.Company)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("/generate", c.Generate)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/validate", c.Validate)
	h.Post("/:id/send-for-signature", c.SendForSignature)
	h.Get("/:id/signatures", c.GetSignatures)
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documentService.Create(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create document", res))
}

func (c *documentController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateDocumentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documentService.Generate(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Document drafted", res))
}

// GetAll accepts optional ?type= and ?status= filters.
func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	filter := contract.DocumentFilter{
		Type:   entity.DocumentType(ctx.Query("type")),
		Status: entity.DocumentStatus(ctx.Query("status")),
	}

	res, err := c.documentService.GetAll(ctx.UserContext(), serverutils.CompanyID(ctx), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.Show(ctx.UserContext(), serverutils.CompanyID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateDocumentRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.documentService.Update(ctx.UserContext(), serverutils.CompanyID(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.documentService.Delete(ctx.UserContext(), serverutils.CompanyID(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) Validate(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.documentService.Validate(ctx.UserContext(), serverutils.CompanyID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Validation finished", res))
}

func (c *documentController) SendForSignature(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendForSignatureRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.signatureService.SendForSignature(ctx.UserContext(), serverutils.CompanyID(ctx), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document sent for signature", res))
}

func (c *documentController) GetSignatures(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.signatureService.GetAllByDocument(ctx.UserContext(), serverutils.CompanyID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get signatures", res))
}
