// Package mailer delivers messages addressed to a user's email over the configured channel.
package mailer

//go:generate mockgen -source=mailer.go -destination=mock_mailer.go -package=mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/segmentio/kafka-go"
)

// Supported MAILER_BACKEND values
const (
	BackendLog   = "log"
	BackendKafka = "kafka"
	BackendAMQP  = "amqp"
)

const publishTimeout = 5 * time.Second

// MessageWriter is the part of kafka.Writer used to publish mail.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher is the part of amqp091.Channel used to publish mail.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// KafkaSender publishes mail as JSON records keyed by recipient.
type KafkaSender struct {
	writer MessageWriter
}

func NewKafkaSender(writer MessageWriter) *KafkaSender {
	return &KafkaSender{writer: writer}
}

// Send publishes msg to the mail topic.
func (s *KafkaSender) Send(ctx context.Context, msg models.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("publish mail message: %w", err)
	}

	logger.FromContext(ctx).Infow("Mail published to Kafka", "to", msg.To, "subject", msg.Subject)
	return nil
}

// AMQPSender publishes mail to a durable direct exchange.
type AMQPSender struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	publisher    Publisher
	exchangeName string
	queueName    string
}

// NewAMQPSender dials url and declares the exchange, the queue and their binding.
func NewAMQPSender(url, exchangeName, queueName string) (*AMQPSender, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	s := &AMQPSender{
		conn:         conn,
		channel:      channel,
		publisher:    channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := s.setup(); err != nil {
		s.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return s, nil
}

func (s *AMQPSender) setup() error {
	err := s.channel.ExchangeDeclare(
		s.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = s.channel.QueueDeclare(
		s.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key is the queue name
	err = s.channel.QueueBind(s.queueName, s.queueName, s.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Send publishes msg as a persistent JSON message.
func (s *AMQPSender) Send(ctx context.Context, msg models.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = s.publisher.PublishWithContext(
		ctx,
		s.exchangeName, // exchange
		s.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish mail message: %w", err)
	}

	logger.FromContext(ctx).Infow("Mail published to AMQP",
		"to", msg.To,
		"exchange", s.exchangeName,
		"queue", s.queueName,
	)
	return nil
}

func (s *AMQPSender) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// LogSender writes mail to the application log instead of delivering it.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg models.MailMessage) error {
	logger.FromContext(ctx).Infow("Mail message",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
