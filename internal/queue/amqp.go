package queue

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// campaignSendMessage is the wire format for campaign send jobs.
type campaignSendMessage struct {
	CampaignID int `json:"campaign_id"`
}

// AMQPQueue pushes campaign send jobs through RabbitMQ so the worker
// process can pick them up.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Durable queue, survives broker restarts.
	if _, err := ch.QueueDeclare(CampaignSendsQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) PublishCampaignSend(campaignID int) error {
	body, err := json.Marshal(campaignSendMessage{CampaignID: campaignID})
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		CampaignSendsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// SubscribeCampaignSends consumes until the channel closes. Failed jobs
// are requeued up to 3 times via the x-retry-count header.
func (q *AMQPQueue) SubscribeCampaignSends(handler func(campaignID int) error) error {
	msgs, err := q.ch.Consume(
		CampaignSendsQueue,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for d := range msgs {
		var msg campaignSendMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Println("invalid campaign send job:", err)
			d.Ack(false)
			continue
		}

		if err := handler(msg.CampaignID); err != nil {
			log.Println("failed to process campaign", msg.CampaignID, ":", err)
			var retryCount int
			if v, ok := d.Headers["x-retry-count"].(int32); ok {
				retryCount = int(v)
			}
			if retryCount < 3 {
				q.republish(d.Body, retryCount+1)
			} else {
				log.Println("giving up on campaign", msg.CampaignID, "after", retryCount, "retries")
			}
		}

		d.Ack(false)
	}
	return nil
}

func (q *AMQPQueue) republish(body []byte, retryCount int) {
	err := q.ch.Publish(
		"",
		CampaignSendsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Headers:     amqp.Table{"x-retry-count": int32(retryCount)},
			Body:        body,
		},
	)
	if err != nil {
		log.Println("failed to requeue campaign send job:", err)
	}
}

func (q *AMQPQueue) Close() {
	q.ch.Close()
	q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
