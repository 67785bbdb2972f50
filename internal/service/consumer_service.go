package service

import (
	"context"
	"encoding/json"
	"errors"

	"docintel-be/internal/dto"
	"docintel-be/internal/pkg/logger"
	"docintel-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the async ingest topic. Each message carries a full
// document; malformed payloads are acked so they never loop, transient
// failures are nacked for redelivery.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	documentService IDocumentService
	logger          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentService IDocumentService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		documentService: documentService,
		logger:          log,
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
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // never retry a malformed payload
		return
	}

	res, err := cs.documentService.Ingest(ctx, &payload.Document)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			// backend may come back, leave the message for redelivery
			cs.logger.Warn("CONSUMER", "Embedding backend unavailable, nacking", map[string]interface{}{
				"job_id": payload.JobId,
			})
			msg.Nack()
			return
		}
		cs.logger.Error("CONSUMER", "Failed to ingest document", map[string]interface{}{
			"job_id": payload.JobId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Document ingested from queue", map[string]interface{}{
		"job_id":      payload.JobId,
		"document_id": res.DocumentId,
		"chunks":      res.ChunkCount,
	})
	msg.Ack()
}
