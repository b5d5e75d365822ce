package postgres

import (
	"SalesBoard-Backend/internal/domain"
	"SalesBoard-Backend/internal/repository"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage реализует интерфейс Storage поверх GORM. Несмотря на
// название пакета, работает и с sqlite-драйвером: используются только
// конструкции, общие для обоих диалектов.
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// GetStats получает запись статистики по имени
func (s *PostgresStorage) GetStats(ctx context.Context, name string) (*domain.SalesRecord, error) {
	var rec domain.SalesRecord

	err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, repository.ErrRecordNotFound
	}
	if err != nil {
		s.log.Error("failed to get sales record", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get sales record: %w", err)
	}

	return &rec, nil
}

// RecordSale атомарно создает запись или увеличивает накопители.
// Один upsert-запрос, поэтому параллельные продажи одного имени не
// теряют обновлений.
func (s *PostgresStorage) RecordSale(ctx context.Context, name string, amount, leads int64) error {
	if amount < 0 {
		return repository.ErrNegativeAmount
	}
	if leads < 0 {
		return repository.ErrNegativeLeads
	}

	rec := domain.SalesRecord{
		Name:         name,
		WeeklySales:  amount,
		MonthlySales: amount,
		WeeklyLeads:  leads,
		MonthlyLeads: leads,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"weekly_sales":  gorm.Expr("weekly_sales + ?", amount),
			"monthly_sales": gorm.Expr("monthly_sales + ?", amount),
			"weekly_leads":  gorm.Expr("weekly_leads + ?", leads),
			"monthly_leads": gorm.Expr("monthly_leads + ?", leads),
		}),
	}).Create(&rec).Error
	if err != nil {
		s.log.Error("failed to record sale",
			zap.String("name", name),
			zap.Int64("amount", amount),
			zap.Int64("leads", leads),
			zap.Error(err))
		return fmt.Errorf("failed to record sale: %w", err)
	}

	return nil
}

// SetEmoji создает запись при необходимости и перезаписывает эмодзи
func (s *PostgresStorage) SetEmoji(ctx context.Context, name string, emoji string) error {
	rec := domain.SalesRecord{
		Name:  name,
		Emoji: emoji,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"emoji": emoji,
		}),
	}).Create(&rec).Error
	if err != nil {
		s.log.Error("failed to set emoji", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to set emoji: %w", err)
	}

	return nil
}

// ListRanked возвращает все записи, отсортированные по метрике по убыванию.
// При равных суммах первой идет более ранняя запись (created_at, затем имя).
func (s *PostgresStorage) ListRanked(ctx context.Context, metric domain.Metric) ([]*domain.SalesRecord, error) {
	column, err := metricColumn(metric)
	if err != nil {
		return nil, err
	}

	var records []*domain.SalesRecord
	err = s.db.WithContext(ctx).
		Order(fmt.Sprintf("%s DESC, created_at ASC, name ASC", column)).
		Find(&records).Error
	if err != nil {
		s.log.Error("failed to list ranked records", zap.String("metric", string(metric)), zap.Error(err))
		return nil, fmt.Errorf("failed to list ranked records: %w", err)
	}

	return records, nil
}

// ResetWeekly обнуляет недельные накопители у всех записей одним запросом
func (s *PostgresStorage) ResetWeekly(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&domain.SalesRecord{}).
		Updates(map[string]interface{}{
			"weekly_sales": 0,
			"weekly_leads": 0,
		}).Error
	if err != nil {
		s.log.Error("failed to reset weekly totals", zap.Error(err))
		return fmt.Errorf("failed to reset weekly totals: %w", err)
	}

	s.log.Info("weekly totals reset")
	return nil
}

// ResetMonthly обнуляет месячные накопители у всех записей одним запросом
func (s *PostgresStorage) ResetMonthly(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&domain.SalesRecord{}).
		Updates(map[string]interface{}{
			"monthly_sales": 0,
			"monthly_leads": 0,
		}).Error
	if err != nil {
		s.log.Error("failed to reset monthly totals", zap.Error(err))
		return fmt.Errorf("failed to reset monthly totals: %w", err)
	}

	s.log.Info("monthly totals reset")
	return nil
}

// metricColumn проверяет метрику и возвращает имя столбца. Белый список
// защищает ORDER BY от подстановки произвольных выражений.
func metricColumn(metric domain.Metric) (string, error) {
	switch metric {
	case domain.MetricWeeklySales:
		return "weekly_sales", nil
	case domain.MetricMonthlySales:
		return "monthly_sales", nil
	default:
		return "", fmt.Errorf("unknown ranking metric: %q", metric)
	}
}
