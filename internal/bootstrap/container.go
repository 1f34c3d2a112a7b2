package bootstrap

import (
	"context"
	"time"

	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/controller"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/serverutils"
	"incorporate-run-be/internal/repository/memory"
	"incorporate-run-be/internal/service"
	"incorporate-run-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const companyCacheTTL = 5 * time.Minute

type Container struct {
	Guards controller.Guards

	// Controllers
	AuthController         controller.IAuthController
	CompanyController      controller.ICompanyController
	FounderController      controller.IFounderController
	InvestorController     controller.IInvestorController
	DocumentController     controller.IDocumentController
	SignatureController    controller.ISignatureController
	TaskController         controller.ITaskController
	CapTableController     controller.ICapTableController
	ChatController         controller.IChatController
	NotificationController controller.INotificationController
	VoiceController        controller.IVoiceController

	// Background workers, started by Start
	ConsumerService service.IConsumerService
	ActivityService service.IActivityService
	OutboxService   service.IOutboxService
	WebSocketHub    *websocket.Hub

	infra  *Infrastructure
	cfg    *config.Config
	logger logger.ILogger
}

func NewContainer(cfg *config.Config, infra *Infrastructure, sysLogger logger.ILogger) *Container {
	uowFactory := infra.RepositoryFactory

	// 1. Index queue
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))

	// 2. Realtime
	wsHub := websocket.NewHub(infra.Redis, infra.NotificationLogger)

	// 3. Services
	generationService := service.NewGenerationService(infra.LLM, sysLogger)
	retrievalService := service.NewRetrievalService(uowFactory, infra.Embedding, sysLogger)
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IndexTopicName)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IndexTopicName, uowFactory, retrievalService, sysLogger)
	outboxService := service.NewOutboxService(uowFactory, infra.Mailer, cfg.Worker.OutboxMaxAttempts, sysLogger)

	authService := service.NewAuthService(uowFactory, cfg.App.JwtSecret)
	founderService := service.NewFounderService(uowFactory, outboxService, infra.Events, cfg.App.ClientURL, sysLogger)
	investorService := service.NewInvestorService(uowFactory, generationService, publisherService, infra.Events, sysLogger)
	companyService := service.NewCompanyService(uowFactory, memory.NewCompanyCache(companyCacheTTL), founderService, investorService, sysLogger)
	documentService := service.NewDocumentService(uowFactory, generationService, retrievalService, publisherService, sysLogger)
	signatureService := service.NewSignatureService(uowFactory, outboxService, infra.Events, cfg.App.ClientURL, sysLogger)
	taskService := service.NewTaskService(uowFactory)
	capTableService := service.NewCapTableService(uowFactory)
	chatService := service.NewChatService(uowFactory, generationService, retrievalService, sysLogger)
	activityService := service.NewActivityService(uowFactory, infra.Subscriber, wsHub, infra.NotificationLogger)
	voiceService := service.NewVoiceService(infra.Speech)

	// 4. Controllers
	return &Container{
		Guards: controller.Guards{
			Auth:    serverutils.NewJwtMiddleware(cfg.App.JwtSecret),
			Company: controller.NewCompanyMiddleware(companyService),
		},

		AuthController:         controller.NewAuthController(authService),
		CompanyController:      controller.NewCompanyController(companyService),
		FounderController:      controller.NewFounderController(founderService),
		InvestorController:     controller.NewInvestorController(investorService),
		DocumentController:     controller.NewDocumentController(documentService, signatureService),
		SignatureController:    controller.NewSignatureController(signatureService),
		TaskController:         controller.NewTaskController(taskService),
		CapTableController:     controller.NewCapTableController(capTableService),
		ChatController:         controller.NewChatController(chatService),
		NotificationController: controller.NewNotificationController(activityService, wsHub, infra.NotificationLogger),
		VoiceController:        controller.NewVoiceController(voiceService),

		ConsumerService: consumerService,
		ActivityService: activityService,
		OutboxService:   outboxService,
		WebSocketHub:    wsHub,

		infra:  infra,
		cfg:    cfg,
		logger: sysLogger,
	}
}

// Start launches the background workers; they stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	if err := c.ActivityService.Start(ctx); err != nil {
		return err
	}

	go c.OutboxService.Run(ctx, c.cfg.Worker.OutboxReconcileInterval)

	c.logger.Info("BOOTSTRAP", "Background workers started", map[string]interface{}{
		"outbox_interval": c.cfg.Worker.OutboxReconcileInterval.String(),
	})
	return nil
}

func (c *Container) Close() {
	c.infra.Close()
}
