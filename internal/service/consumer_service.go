package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-schoolplay-be/internal/config"
	"ai-schoolplay-be/internal/dto"
	"ai-schoolplay-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IConsumerService drives the pipeline: one subscription per stage topic.
// Delivery is at-least-once; a short-lived dedupe cache suppresses duplicate
// deliveries of runs that already succeeded, everything else is handled by
// the per-stage state guards.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topics     config.QueueConfig
	dedupe     *memory.DedupeRepository
	scans      IScanService
	extraction IExtractionService
	concepts   IConceptService
	packs      IPackService
	games      IGameService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topics config.QueueConfig,
	dedupe *memory.DedupeRepository,
	scans IScanService,
	extraction IExtractionService,
	concepts IConceptService,
	packs IPackService,
	games IGameService,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topics:     topics,
		dedupe:     dedupe,
		scans:      scans,
		extraction: extraction,
		concepts:   concepts,
		packs:      packs,
		games:      games,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	handlers := map[string]func(context.Context, *message.Message){
		cs.topics.QuickScanTopic:         cs.handleQuickScan,
		cs.topics.TextExtractionTopic:    cs.handleTextExtraction,
		cs.topics.ConceptExtractionTopic: cs.handleConceptExtraction,
		cs.topics.PackGenerationTopic:    cs.handlePackGeneration,
		cs.topics.GameGenerationTopic:    cs.handleGameGeneration,
	}

	for topic, handler := range handlers {
		messages, err := cs.pubSub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func(handler func(context.Context, *message.Message)) {
			for msg := range messages {
				handler(ctx, msg)
			}
		}(handler)
	}

	return nil
}

// run applies the shared dedupe/ack protocol around one stage handler.
// Unparseable messages are acked, they will never succeed. Handler errors are
// nacked for redelivery.
func (cs *consumerService) run(ctx context.Context, msg *message.Message, topic string, documentId uuid.UUID, fn func(context.Context) error) {
	if cs.dedupe != nil && cs.dedupe.Seen(topic, documentId) {
		log.Printf("[INFO] Skipping duplicate %s delivery for document %s", topic, documentId)
		msg.Ack()
		return
	}

	if err := fn(ctx); err != nil {
		log.Printf("[ERROR] %s failed for document %s: %v", topic, documentId, err)
		msg.Nack()
		return
	}

	if cs.dedupe != nil {
		cs.dedupe.MarkDone(topic, documentId)
	}
	msg.Ack()
}

func (cs *consumerService) handleQuickScan(ctx context.Context, msg *message.Message) {
	var payload dto.QuickScanMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal quick scan message: %v", err)
		msg.Ack()
		return
	}
	log.Printf("[INFO] Quick scan for document %s", payload.DocumentId)
	cs.run(ctx, msg, cs.topics.QuickScanTopic, payload.DocumentId, func(ctx context.Context) error {
		return cs.scans.HandleQuickScan(ctx, payload.DocumentId)
	})
}

func (cs *consumerService) handleTextExtraction(ctx context.Context, msg *message.Message) {
	var payload dto.TextExtractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal text extraction message: %v", err)
		msg.Ack()
		return
	}
	log.Printf("[INFO] Text extraction for document %s", payload.DocumentId)
	cs.run(ctx, msg, cs.topics.TextExtractionTopic, payload.DocumentId, func(ctx context.Context) error {
		return cs.extraction.HandleTextExtraction(ctx, payload.DocumentId)
	})
}

func (cs *consumerService) handleConceptExtraction(ctx context.Context, msg *message.Message) {
	var payload dto.ConceptExtractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal concept extraction message: %v", err)
		msg.Ack()
		return
	}
	log.Printf("[INFO] Concept extraction for document %s", payload.DocumentId)
	cs.run(ctx, msg, cs.topics.ConceptExtractionTopic, payload.DocumentId, func(ctx context.Context) error {
		return cs.concepts.HandleConceptExtraction(ctx, payload.DocumentId)
	})
}

func (cs *consumerService) handlePackGeneration(ctx context.Context, msg *message.Message) {
	var payload dto.PackGenerationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal pack generation message: %v", err)
		msg.Ack()
		return
	}
	log.Printf("[INFO] Pack generation for document %s", payload.DocumentId)
	cs.run(ctx, msg, cs.topics.PackGenerationTopic, payload.DocumentId, func(ctx context.Context) error {
		return cs.packs.HandlePackGeneration(ctx, payload.DocumentId)
	})
}

func (cs *consumerService) handleGameGeneration(ctx context.Context, msg *message.Message) {
	var payload dto.GameGenerationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal game generation message: %v", err)
		msg.Ack()
		return
	}
	log.Printf("[INFO] Game generation for pack %s (document %s)", payload.PackId, payload.DocumentId)
	cs.run(ctx, msg, cs.topics.GameGenerationTopic, payload.DocumentId, func(ctx context.Context) error {
		return cs.games.HandleGameGeneration(ctx, payload.PackId, payload.DocumentId)
	})
}
