package service

import (
	"SalesBoard-Backend/internal/config"
	"SalesBoard-Backend/internal/domain"
	"SalesBoard-Backend/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStorage is a mock implementation of repository.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetStats(ctx context.Context, name string) (*domain.SalesRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesRecord), args.Error(1)
}

func (m *MockStorage) RecordSale(ctx context.Context, name string, amount, leads int64) error {
	args := m.Called(ctx, name, amount, leads)
	return args.Error(0)
}

func (m *MockStorage) SetEmoji(ctx context.Context, name string, emoji string) error {
	args := m.Called(ctx, name, emoji)
	return args.Error(0)
}

func (m *MockStorage) ListRanked(ctx context.Context, metric domain.Metric) ([]*domain.SalesRecord, error) {
	args := m.Called(ctx, metric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SalesRecord), args.Error(1)
}

func (m *MockStorage) ResetWeekly(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) ResetMonthly(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func newTestInterpreter(storage *MockStorage, notifier *MockNotifier) *Interpreter {
	botCfg := &config.Bot{
		Admins:    []string{"Matthew Varchol"},
		ShowLeads: true,
	}
	boardCfg := &config.Leaderboard{Title: "🏆 Weekly Sales Leaderboard"}
	return NewInterpreter(storage, notifier, botCfg, boardCfg, zap.NewNop())
}

func handle(t *testing.T, i *Interpreter, sender, text string) error {
	t.Helper()
	return i.HandleMessage(context.Background(), domain.InboundMessage{
		SenderName: sender,
		Text:       text,
	})
}

func TestSaleEntrySimple(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("RecordSale", mock.Anything, "Alice", int64(1500), int64(0)).Return(nil)
	storage.On("ListRanked", mock.Anything, domain.MetricWeeklySales).Return([]*domain.SalesRecord{
		{Name: "Alice", WeeklySales: 1500, MonthlySales: 1500},
	}, nil)
	notifier.On("Send", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, handle(t, i, "Alice", "+1500"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSaleEntryWithLeadsRendersLeaderboard(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("RecordSale", mock.Anything, "Alice", int64(2000), int64(4)).Return(nil)
	storage.On("ListRanked", mock.Anything, domain.MetricWeeklySales).Return([]*domain.SalesRecord{
		{Name: "Alice", WeeklySales: 2000, MonthlySales: 2000, WeeklyLeads: 4, MonthlyLeads: 4},
	}, nil)

	wantBoard := "🏆 Weekly Sales Leaderboard\n\n" +
		"1. Alice – $2,000 | 4 leads \n"
	notifier.On("Send", mock.Anything, wantBoard).Return(nil)

	require.NoError(t, handle(t, i, "Alice", "+2000 4"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSaleEntryBadFormat(t *testing.T) {
	for _, text := range []string{"+", "+12x", "+12.5", "+-5", "+100 2 3", "+100 two", "+ 1500", "+1500 ", "+2000  4"} {
		storage := new(MockStorage)
		notifier := new(MockNotifier)
		i := newTestInterpreter(storage, notifier)

		notifier.On("Send", mock.Anything, replySaleFormat).Return(nil)

		require.NoError(t, handle(t, i, "Alice", text), "text=%q", text)

		// Никаких изменений состояния при ошибке формата.
		storage.AssertNotCalled(t, "RecordSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertExpectations(t)
	}
}

func TestSaleEntryStorageFailure(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("RecordSale", mock.Anything, "Alice", int64(100), int64(0)).Return(errors.New("db down"))

	err := handle(t, i, "Alice", "+100")
	require.Error(t, err)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSetEmoji(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("SetEmoji", mock.Anything, "Alice", "🔥").Return(nil)
	notifier.On("Send", mock.Anything, "Alice set their leaderboard emoji to 🔥").Return(nil)

	require.NoError(t, handle(t, i, "Alice", "!setemoji 🔥"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSetEmojiKeywordCaseInsensitive(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("SetEmoji", mock.Anything, "Alice", "😎").Return(nil)
	notifier.On("Send", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, handle(t, i, "Alice", "!SetEmoji 😎"))
	storage.AssertExpectations(t)
}

func TestSetEmojiMissingArgument(t *testing.T) {
	for _, text := range []string{"!setemoji", "!setemoji   "} {
		storage := new(MockStorage)
		notifier := new(MockNotifier)
		i := newTestInterpreter(storage, notifier)

		notifier.On("Send", mock.Anything, replySetEmojiUsage).Return(nil)

		require.NoError(t, handle(t, i, "Alice", text), "text=%q", text)

		storage.AssertNotCalled(t, "SetEmoji", mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertExpectations(t)
	}
}

func TestMyTotal(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("GetStats", mock.Anything, "Alice").Return(&domain.SalesRecord{
		Name:         "Alice",
		WeeklySales:  2000,
		MonthlySales: 12500,
		WeeklyLeads:  4,
		MonthlyLeads: 9,
	}, nil)

	want := "📊 Alice's Totals\n\n" +
		"Weekly: $2,000 | 4 leads\n" +
		"Monthly: $12,500 | 9 leads"
	notifier.On("Send", mock.Anything, want).Return(nil)

	require.NoError(t, handle(t, i, "Alice", "!MyTotal"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestMyTotalNoRecord(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("GetStats", mock.Anything, "Alice").Return(nil, repository.ErrRecordNotFound)
	notifier.On("Send", mock.Anything, "Alice, you have no recorded sales yet.").Return(nil)

	require.NoError(t, handle(t, i, "Alice", "!mytotal"))

	notifier.AssertExpectations(t)
}

func TestResetWeeklyAsAdmin(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("ResetWeekly", mock.Anything).Return(nil)
	notifier.On("Send", mock.Anything, replyWeeklyReset).Return(nil)

	require.NoError(t, handle(t, i, "Matthew Varchol", "!resetweekly"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestResetMonthlyAsAdmin(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("ResetMonthly", mock.Anything).Return(nil)
	notifier.On("Send", mock.Anything, replyMonthlyReset).Return(nil)

	require.NoError(t, handle(t, i, "Matthew Varchol", "!ResetMonthly"))

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestResetUnauthorized(t *testing.T) {
	for _, text := range []string{"!resetweekly", "!resetmonthly"} {
		storage := new(MockStorage)
		notifier := new(MockNotifier)
		i := newTestInterpreter(storage, notifier)

		notifier.On("Send", mock.Anything, replyUnauthorized).Return(nil)

		require.NoError(t, handle(t, i, "Eve", text), "text=%q", text)

		storage.AssertNotCalled(t, "ResetWeekly", mock.Anything)
		storage.AssertNotCalled(t, "ResetMonthly", mock.Anything)
		notifier.AssertExpectations(t)
	}
}

func TestAdminMatchIsCaseSensitive(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	notifier.On("Send", mock.Anything, replyUnauthorized).Return(nil)

	require.NoError(t, handle(t, i, "matthew varchol", "!resetweekly"))

	storage.AssertNotCalled(t, "ResetWeekly", mock.Anything)
}

func TestUnrecognizedTextIsIgnored(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	for _, text := range []string{"hello team", "!unknown", "setemoji 🔥", ""} {
		require.NoError(t, handle(t, i, "Alice", text), "text=%q", text)
	}

	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotifierFailureIsSwallowed(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockNotifier)
	i := newTestInterpreter(storage, notifier)

	storage.On("SetEmoji", mock.Anything, "Alice", "🔥").Return(nil)
	notifier.On("Send", mock.Anything, mock.AnythingOfType("string")).Return(errors.New("api down"))

	// Отказ отправки не должен превращаться в ошибку обработки.
	require.NoError(t, handle(t, i, "Alice", "!setemoji 🔥"))

	storage.AssertExpectations(t)
}

func TestParseSaleEntry(t *testing.T) {
	tests := []struct {
		remainder string
		want      saleEntry
		ok        bool
	}{
		{"1500", saleEntry{Amount: 1500}, true},
		{"2000 4", saleEntry{Amount: 2000, Leads: 4}, true},
		{"0", saleEntry{}, true},
		{"0 0", saleEntry{}, true},
		{"", saleEntry{}, false},
		{"abc", saleEntry{}, false},
		{"15.5", saleEntry{}, false},
		{"-100", saleEntry{}, false},
		{"100 -2", saleEntry{}, false},
		{"1 2 3", saleEntry{}, false},
		// Остаток должен совпадать с формой целиком: пробелы по краям
		// и двойные разделители не принимаются.
		{" 1500", saleEntry{}, false},
		{"1500 ", saleEntry{}, false},
		{" 2000 4", saleEntry{}, false},
		{"2000 4 ", saleEntry{}, false},
		{"2000  4", saleEntry{}, false},
	}

	for _, tt := range tests {
		got, ok := parseSaleEntry(tt.remainder)
		assert.Equal(t, tt.ok, ok, "remainder=%q", tt.remainder)
		if tt.ok {
			assert.Equal(t, tt.want, got, "remainder=%q", tt.remainder)
		}
	}
}
