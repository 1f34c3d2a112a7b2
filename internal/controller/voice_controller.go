package controller

import (
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	TextToSpeech(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{voiceService: voiceService}
}

func (c *voiceController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/voice")
	h.Use(g.Auth)
	h.Post("/tts", c.TextToSpeech)
}

func (c *voiceController) TextToSpeech(ctx *fiber.Ctx) error {
	var req dto.TextToSpeechRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	audio, contentType, err := c.voiceService.TextToSpeech(ctx.UserContext(), req.Text)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	return ctx.Send(audio)
}
