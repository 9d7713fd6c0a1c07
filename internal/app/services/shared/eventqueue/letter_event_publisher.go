package eventqueue

import (
	"context"
	"fmt"
	"sync"

	"nhscribe-service/internal/app/contracts"
	"nhscribe-service/internal/app/models"
	"nhscribe-service/internal/pkg/constvars"
	"nhscribe-service/internal/pkg/exceptions"
	"nhscribe-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publisher sends letter workflow events to a durable queue and waits for the
// broker to confirm each one.
type publisher struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

func NewLetterEventPublisher(conn *amqp.Connection, queueName string, log *zap.Logger) (contracts.LetterEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err, queueName)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err, queueName)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err, queueName)
	}

	return &publisher{
		ch:        ch,
		log:       log,
		queueName: queueName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (p *publisher) PublishLetterEvent(ctx context.Context, event *models.LetterEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Info("LetterEventPublisher.PublishLetterEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Event),
		zap.String(constvars.LoggingLetterIDKey, event.LetterID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		MessageId:     event.ID,
		Type:          event.Event,
		CorrelationId: requestID,
		Timestamp:     event.OccurredAt,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queueName)
	}

	p.log.Info("LetterEventPublisher.PublishLetterEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.queueName),
	)
	return nil
}
