package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/models"
)

// readBackoff throttles retries when the broker keeps erroring.
const readBackoff = time.Second

// SaleRecorder persists one consumed sale. Implemented by sales.Service.
type SaleRecorder interface {
	RecordSale(ctx context.Context, sale models.TicketSaleEvent) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads ticket-sale events from Kafka and feeds them to the
// sales store. The checkout flow elsewhere on the platform produces them.
type Consumer struct {
	reader messageReader
	sales  SaleRecorder
	logger *logger.Logger
	topic  string
}

func NewConsumer(brokers []string, topic, groupID string, sales SaleRecorder, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, sales: sales, logger: log, topic: topic}
}

// Start consumes until ctx is cancelled. Malformed messages and insert
// failures are logged and skipped; one bad sale must not stall the feed.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.LogKafka("START", c.topic, "Sales ingest consumer started")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.LogKafka("STOP", c.topic, "Sales ingest consumer stopped")
				return
			}
			c.logger.Error("KAFKA", fmt.Sprintf("Error reading message: %v", err))
			select {
			case <-ctx.Done():
				c.logger.LogKafka("STOP", c.topic, "Sales ingest consumer stopped")
				return
			case <-time.After(readBackoff):
			}
			continue
		}

		var sale models.TicketSaleEvent
		if err := json.Unmarshal(msg.Value, &sale); err != nil {
			c.logger.Warn("KAFKA", fmt.Sprintf("Failed to unmarshal sale event: %v", err))
			continue
		}

		if err := c.sales.RecordSale(ctx, sale); err != nil {
			c.logger.Error("KAFKA", fmt.Sprintf("Failed to record sale %s: %v", sale.TicketID, err))
			continue
		}

		c.logger.LogKafka("CONSUME", c.topic, fmt.Sprintf("Recorded sale %s for event %s", sale.TicketID, sale.EventID))
	}
}

// Close gracefully shuts down the Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
