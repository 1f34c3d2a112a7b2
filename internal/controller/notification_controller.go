package controller

import (
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/service"
	internalWS "incorporate-run-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router, g Guards)
	GetAll(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
	MarkAsRead(ctx *fiber.Ctx) error
	MarkAllAsRead(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type notificationController struct {
	activityService service.IActivityService
	hub             *internalWS.Hub
	logger          logger.ILogger
}

func NewNotificationController(activityService service.IActivityService, hub *internalWS.Hub, log logger.ILogger) INotificationController {
	return &notificationController{
		activityService: activityService,
		hub:             hub,
		logger:          log,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router, g Guards) {
	h := r.Group("/notifications")
	h.Use(g.Auth)
	h.Get("", c.GetAll)
	h.Get("/unread-count", c.UnreadCount)
	h.Put("/read-all", c.MarkAllAsRead)
	h.Put("/:id/read", c.MarkAsRead)

	// the JWT middleware also accepts ?token= since browsers can't set
	// headers on the upgrade request
	r.Get("/ws", g.Auth, c.ServeWs)
}

func (c *notificationController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.activityService.GetAll(ctx.UserContext(), userId, ctx.QueryInt("page", 1), ctx.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (c *notificationController) UnreadCount(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.activityService.UnreadCount(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unread count", res))
}

func (c *notificationController) MarkAsRead(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.activityService.MarkAsRead(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification marked as read", nil))
}

func (c *notificationController) MarkAllAsRead(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	if err := c.activityService.MarkAllAsRead(ctx.UserContext(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("All notifications marked as read", nil))
}

func (c *notificationController) ServeWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		c.logger.Info("NOTIFICATION", "WebSocket session started", map[string]interface{}{"user_id": userId.String()})
		internalWS.ServeWs(c.hub, conn, userId)
		c.logger.Info("NOTIFICATION", "WebSocket session ended", map[string]interface{}{"user_id": userId.String()})
	})(ctx)
}
