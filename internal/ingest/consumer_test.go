package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/models"
)

type stubReader struct {
	messages []kafka.Message
	err      error
	reads    int64
}

func (s *stubReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	atomic.AddInt64(&s.reads, 1)
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(s.messages) > 0 {
		msg := s.messages[0]
		s.messages = s.messages[1:]
		return msg, nil
	}
	if s.err != nil {
		return kafka.Message{}, s.err
	}
	return kafka.Message{}, context.Canceled
}

func (s *stubReader) Close() error { return nil }

type MockSaleRecorder struct {
	mock.Mock
}

func (m *MockSaleRecorder) RecordSale(ctx context.Context, sale models.TicketSaleEvent) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func newTestConsumer(reader messageReader, sales SaleRecorder) *Consumer {
	return &Consumer{
		reader: reader,
		sales:  sales,
		logger: logger.NewTestLogger(),
		topic:  "ticket-sales",
	}
}

func TestConsumerRecordsSales(t *testing.T) {
	sale := models.TicketSaleEvent{
		TicketID:    "8400fd34-23a2-4f66-80cb-7aa5a1589cbb",
		EventID:     "b2bbd9b4-2b0b-4f77-ba2e-9e96a32dc9f1",
		PurchasedAt: time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(sale)
	require.NoError(t, err)

	reader := &stubReader{messages: []kafka.Message{{Value: payload}}}
	recorder := new(MockSaleRecorder)
	recorder.On("RecordSale", mock.Anything, sale).Return(nil)

	newTestConsumer(reader, recorder).Start(context.Background())

	recorder.AssertExpectations(t)
}

func TestConsumerSkipsMalformedMessages(t *testing.T) {
	reader := &stubReader{messages: []kafka.Message{{Value: []byte("not json")}}}
	recorder := new(MockSaleRecorder)

	newTestConsumer(reader, recorder).Start(context.Background())

	recorder.AssertNotCalled(t, "RecordSale", mock.Anything, mock.Anything)
}

func TestConsumerBacksOffOnBrokerErrors(t *testing.T) {
	reader := &stubReader{err: errors.New("broker unavailable")}
	recorder := new(MockSaleRecorder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestConsumer(reader, recorder).Start(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop on cancellation")
	}

	// Errors wait out the backoff instead of spinning the read loop.
	assert.LessOrEqual(t, atomic.LoadInt64(&reader.reads), int64(2))
	recorder.AssertNotCalled(t, "RecordSale", mock.Anything, mock.Anything)
}
