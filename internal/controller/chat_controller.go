package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	History(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	Extract(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/chat")
	h.Use(g.Auth)
	// extraction feeds onboarding, so it cannot require a company
	h.Post("/extract", c.Extract)
	h.Get("/messages", g.Company, c.History)
	h.Post("/messages", g.Company, c.Send)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.chatService.History(ctx.UserContext(), serverutils.CompanyID(ctx), ctx.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Send(ctx.UserContext(), serverutils.CompanyID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

// Extract answers with data=null when nothing usable came back.
func (c *chatController) Extract(ctx *fiber.Ctx) error {
	var req dto.ExtractEntitiesRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Extract(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Extraction finished", res))
}
