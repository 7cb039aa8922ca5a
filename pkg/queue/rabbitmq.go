package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"blogicum/pkg/config"
	"blogicum/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MailQueueName  = "mail_queue"
	MailExchange   = "mail"
	MailRoutingKey = "outgoing"
)

// MailTask is a single outgoing message. Delivery is out of scope; the
// worker only records that the task arrived.
type MailTask struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	From    string    `json:"from"`
	To      []string  `json:"to"`
	Created time.Time `json:"created"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func URL(cfg *config.Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(URL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		MailExchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		MailQueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		MailQueueName,  // queue name
		MailRoutingKey, // routing key
		MailExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishMailTask publishes a mail task as a persistent JSON message.
func (c *Client) PublishMailTask(task MailTask) error {
	if task.Created.IsZero() {
		task.Created = time.Now()
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		MailExchange,   // exchange
		MailRoutingKey, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    task.Created,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish mail task to exchange=%s: %v", MailExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published mail task to exchange=%s, queue=%s: subject=%q", MailExchange, MailQueueName, task.Subject)
	return nil
}

// ConsumeMailTasks delivers tasks to handler until the channel closes.
// Malformed messages are dropped; handler failures are requeued.
func (c *Client) ConsumeMailTasks(handler func(task MailTask) error) error {
	msgs, err := c.channel.Consume(
		MailQueueName, // queue
		"",            // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from mail queue: %s", MailQueueName)

	go func() {
		for msg := range msgs {
			task, err := DecodeMailTask(msg.Body)
			if err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal mail task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed to process mail task: %v", err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

func DecodeMailTask(body []byte) (MailTask, error) {
	var task MailTask
	if err := json.Unmarshal(body, &task); err != nil {
		return MailTask{}, err
	}
	if len(task.To) == 0 {
		return MailTask{}, fmt.Errorf("mail task has no recipients")
	}
	return task, nil
}
