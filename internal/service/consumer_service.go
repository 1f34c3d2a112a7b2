package service

import (
	"context"
	"encoding/json"
	"errors"

	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/apperror"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the document indexing topic.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	retrieval  IRetrievalService
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	retrieval IRetrievalService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		retrieval:  retrieval,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("INDEXER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // poison message, never retry
		return
	}

	details := map[string]interface{}{
		"document_id": payload.DocumentId.String(),
		"company_id":  payload.CompanyId.String(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOwned(ctx, payload.CompanyId, payload.DocumentId)
	if err != nil {
		cs.logger.Error("INDEXER", "Failed to load document", details)
		msg.Nack()
		return
	}
	if doc == nil {
		// deleted before we got to it
		msg.Ack()
		return
	}

	ref, err := cs.retrieval.IndexDocument(ctx, doc)
	if err != nil {
		details["error"] = err.Error()
		if errors.Is(err, apperror.ErrUnavailable) {
			cs.logger.Warn("INDEXER", "Embedding provider unavailable, document not indexed", details)
			msg.Ack()
			return
		}
		cs.logger.Error("INDEXER", "Failed to index document", details)
		msg.Nack()
		return
	}

	var indexRef *string
	if ref != "" {
		indexRef = &ref
	}
	if err := uow.DocumentRepository().SetIndexRef(ctx, doc.Id, indexRef); err != nil {
		details["error"] = err.Error()
		cs.logger.Error("INDEXER", "Failed to store index reference", details)
		msg.Nack()
		return
	}

	cs.logger.Info("INDEXER", "Document indexed", details)
	msg.Ack()
}
