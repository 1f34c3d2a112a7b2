package controller

import (
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ISignatureController serves the signer-facing pages. The magic token is the
// only credential, so these routes sit outside the JWT guard.
type ISignatureController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	Show(ctx *fiber.Ctx) error
	Sign(ctx *fiber.Ctx) error
}

type signatureController struct {
	signatureService service.ISignatureService
}

func NewSignatureController(signatureService service.ISignatureService) ISignatureController {
	return &signatureController{signatureService: signatureService}
}

func (c *signatureController) RegisterRoutes(r fiber.Router, _ Guards) {
	h := r.Group("/signatures")
	h.Get("/:token", c.Show)
	h.Post("/:token/sign", c.Sign)
}

func (c *signatureController) Show(ctx *fiber.Ctx) error {
	res, err := c.signatureService.ShowByToken(ctx.UserContext(), ctx.Params("token"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show signature", res))
}

func (c *signatureController) Sign(ctx *fiber.Ctx) error {
	meta := service.SignerMeta{
		IpAddress: ctx.IP(),
		UserAgent: ctx.Get(fiber.HeaderUserAgent),
	}

	res, err := c.signatureService.SignByToken(ctx.UserContext(), ctx.Params("token"), meta)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document signed", res))
}
