package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"

	"github.com/b-himadri/bakery-backend-api/model"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusUpdated = "order.status_updated"
	TopicCartCheckedOut     = "cart.checked_out"
)

// Producer publishes order lifecycle events. It implements
// service.EventPublisher; publish failures are logged, never propagated.
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(broker string) *Producer {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 10; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return &Producer{producer: producer}
		}

		log.Printf("Waiting for Kafka... (%d/10) Error: %v", i, err)
		time.Sleep(5 * time.Second)
	}

	log.Fatalf("Failed to start Kafka producer: %v", err)
	return nil
}

func (p *Producer) publish(topic string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(data),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send %s Kafka message: %v", topic, err)
		return
	}

	log.Printf("Published %s event: %s", topic, string(data))
}

func (p *Producer) OrderCreated(o *model.Order) {
	p.publish(TopicOrderCreated, map[string]interface{}{
		"event_type": TopicOrderCreated,
		"data": map[string]interface{}{
			"order_id":       o.ID,
			"user_id":        o.UserID,
			"total_amount":   o.TotalAmount,
			"payment_method": o.PaymentMethod,
			"status":         o.Status,
			"created_at":     o.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (p *Producer) OrderStatusUpdated(orderID uint, previous, next string) {
	p.publish(TopicOrderStatusUpdated, map[string]interface{}{
		"event_type": TopicOrderStatusUpdated,
		"data": map[string]interface{}{
			"order_id":        orderID,
			"previous_status": previous,
			"status":          next,
			"updated_at":      time.Now().Format(time.RFC3339),
		},
	})
}

func (p *Producer) CartCheckedOut(userID, orderID uint, total float64) {
	p.publish(TopicCartCheckedOut, map[string]interface{}{
		"event_type": TopicCartCheckedOut,
		"data": map[string]interface{}{
			"user_id":        userID,
			"order_id":       orderID,
			"total_amount":   total,
			"checked_out_at": time.Now().Format(time.RFC3339),
		},
	})
}
