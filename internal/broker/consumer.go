package broker

import (
	"errors"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message é uma entrega já reduzida ao que o processo ws precisa.
type Message struct {
	Recipient string
	Body      []byte
}

type Consumer struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	deliveries <-chan amqp.Delivery
	log        *slog.Logger
}

func NewConsumer(uri, queue string, prefetch int, log *slog.Logger) (*Consumer, error) {
	if log == nil {
		log = slog.Default()
	}
	if prefetch <= 0 {
		prefetch = 50
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	fail := func(err error) (*Consumer, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := declareQueue(ch, queue); err != nil {
		return fail(err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fail(err)
	}
	deliveries, err := ch.Consume(
		queue,
		"ws-consumer",
		true, false, false, false, nil,
	)
	if err != nil {
		return fail(err)
	}
	log.Info("rabbit_consumer_started", "queue", queue, "prefetch", prefetch)
	return &Consumer{conn: conn, ch: ch, deliveries: deliveries, log: log.With("cmp", "broker.consumer")}, nil
}

// Forward repassa cada entrega para fn até o canal do broker fechar.
func (c *Consumer) Forward(fn func(Message)) {
	for d := range c.deliveries {
		fn(toMessage(d))
	}
	c.log.Warn("deliveries_channel_closed")
}

func toMessage(d amqp.Delivery) Message {
	m := Message{Body: d.Body}
	if v, ok := d.Headers[HeaderRecipient].(string); ok {
		m.Recipient = v
	}
	return m
}

func (c *Consumer) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}
