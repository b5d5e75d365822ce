package memory

import (
	"SalesBoard-Backend/internal/domain"
	"SalesBoard-Backend/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// MemStorage хранит статистику в памяти. Используется в тестах и как
// запасной вариант без базы данных.
type MemStorage struct {
	mu      sync.RWMutex
	records map[string]*domain.SalesRecord
	order   []string // имена в порядке первой записи, для стабильного рейтинга
}

func New() *MemStorage {
	return &MemStorage{
		records: make(map[string]*domain.SalesRecord),
	}
}

// getOrCreate must be called with the write lock held.
func (s *MemStorage) getOrCreate(name string) *domain.SalesRecord {
	if rec, exists := s.records[name]; exists {
		return rec
	}
	rec := &domain.SalesRecord{
		Name:      name,
		CreatedAt: time.Now(),
	}
	s.records[name] = rec
	s.order = append(s.order, name)
	return rec
}

func (s *MemStorage) GetStats(_ context.Context, name string) (*domain.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemStorage) RecordSale(_ context.Context, name string, amount, leads int64) error {
	if amount < 0 {
		return repository.ErrNegativeAmount
	}
	if leads < 0 {
		return repository.ErrNegativeLeads
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreate(name)
	rec.AddSale(amount, leads)
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemStorage) SetEmoji(_ context.Context, name string, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.getOrCreate(name)
	rec.Emoji = emoji
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemStorage) ListRanked(_ context.Context, metric domain.Metric) ([]*domain.SalesRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]*domain.SalesRecord, 0, len(s.order))
	for _, name := range s.order {
		cp := *s.records[name]
		ranked = append(ranked, &cp)
	}

	// Стабильная сортировка поверх порядка вставки: при равных суммах
	// первым остается тот, кто записан раньше.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SalesByMetric(metric) > ranked[j].SalesByMetric(metric)
	})

	return ranked, nil
}

func (s *MemStorage) ResetWeekly(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		rec.WeeklySales = 0
		rec.WeeklyLeads = 0
		rec.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemStorage) ResetMonthly(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		rec.MonthlySales = 0
		rec.MonthlyLeads = 0
		rec.UpdatedAt = time.Now()
	}
	return nil
}
