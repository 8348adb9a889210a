package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-admin-dashboard/internal/models"
	"ms-admin-dashboard/internal/sales"
)

// MockSalesDB is a mock implementation of the SalesDBLayer interface
type MockSalesDB struct {
	mock.Mock
}

func (m *MockSalesDB) EventExists(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesDB) GetEventSaleTimes(ctx context.Context, eventID string) ([]time.Time, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockSalesDB) InsertTicket(ctx context.Context, ticket models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func TestGetEventSales(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	times := []time.Time{
		time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 10, 40, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 11, 2, 0, 0, time.UTC),
	}
	mockDB.On("EventExists", mock.Anything, "event-a").Return(true, nil)
	mockDB.On("GetEventSaleTimes", mock.Anything, "event-a").Return(times, nil)

	resp, err := svc.GetEventSales(context.Background(), "event-a")

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalTickets)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Data[0].Count)
	assert.Equal(t, 3, resp.Data[1].Cumulative)
	mockDB.AssertExpectations(t)
}

func TestGetEventSalesNoSales(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	mockDB.On("EventExists", mock.Anything, "event-b").Return(true, nil)
	mockDB.On("GetEventSaleTimes", mock.Anything, "event-b").Return([]time.Time{}, nil)

	resp, err := svc.GetEventSales(context.Background(), "event-b")

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Len(t, resp.Data, 0)
	assert.Equal(t, 0, resp.TotalTickets)
}

func TestGetEventSalesEventNotFound(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	mockDB.On("EventExists", mock.Anything, "missing").Return(false, nil)

	resp, err := svc.GetEventSales(context.Background(), "missing")

	assert.ErrorIs(t, err, sales.ErrEventNotFound)
	assert.Nil(t, resp)
	mockDB.AssertNotCalled(t, "GetEventSaleTimes", mock.Anything, mock.Anything)
}

func TestGetEventSalesFetchFailure(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	mockDB.On("EventExists", mock.Anything, "event-c").Return(true, nil)
	mockDB.On("GetEventSaleTimes", mock.Anything, "event-c").Return(nil, errors.New("connection refused"))

	resp, err := svc.GetEventSales(context.Background(), "event-c")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, sales.ErrEventNotFound)
	assert.Nil(t, resp)
}

func TestRecordSale(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	purchased := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	mockDB.On("InsertTicket", mock.Anything, mock.MatchedBy(func(tk models.Ticket) bool {
		return tk.TicketID == "ticket-1" && tk.EventID == "event-a" && tk.PurchasedAt.Equal(purchased)
	})).Return(nil)

	err := svc.RecordSale(context.Background(), models.TicketSaleEvent{
		TicketID:    "ticket-1",
		EventID:     "event-a",
		PurchasedAt: purchased,
	})

	require.NoError(t, err)
	mockDB.AssertExpectations(t)
}

func TestRecordSaleRejectsMissingIDs(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	err := svc.RecordSale(context.Background(), models.TicketSaleEvent{EventID: "event-a"})
	assert.Error(t, err)

	err = svc.RecordSale(context.Background(), models.TicketSaleEvent{TicketID: "ticket-1"})
	assert.Error(t, err)

	mockDB.AssertNotCalled(t, "InsertTicket", mock.Anything, mock.Anything)
}

func TestRecordSaleDefaultsPurchaseTime(t *testing.T) {
	mockDB := new(MockSalesDB)
	svc := sales.NewService(mockDB)

	mockDB.On("InsertTicket", mock.Anything, mock.MatchedBy(func(tk models.Ticket) bool {
		return !tk.PurchasedAt.IsZero()
	})).Return(nil)

	err := svc.RecordSale(context.Background(), models.TicketSaleEvent{
		TicketID: "ticket-2",
		EventID:  "event-a",
	})

	require.NoError(t, err)
	mockDB.AssertExpectations(t)
}
