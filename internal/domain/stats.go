package domain

import "time"

// Metric выбирает столбец, по которому строится рейтинг.
type Metric string

const (
	MetricWeeklySales  Metric = "weekly_sales"
	MetricMonthlySales Metric = "monthly_sales"
)

// SalesRecord представляет накопленную статистику продаж одного участника.
// Имя — первичный ключ (регистрозависимое), запись создается лениво при
// первой продаже или установке эмодзи.
type SalesRecord struct {
	Name         string    `gorm:"primaryKey;column:name" json:"name"`
	WeeklySales  int64     `gorm:"column:weekly_sales;not null;default:0" json:"weekly_sales"`
	MonthlySales int64     `gorm:"column:monthly_sales;not null;default:0" json:"monthly_sales"`
	WeeklyLeads  int64     `gorm:"column:weekly_leads;not null;default:0" json:"weekly_leads"`
	MonthlyLeads int64     `gorm:"column:monthly_leads;not null;default:0" json:"monthly_leads"`
	Emoji        string    `gorm:"column:emoji;not null;default:''" json:"emoji"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName возвращает название таблицы для GORM
func (SalesRecord) TableName() string {
	return "sales"
}

// AddSale увеличивает недельные и месячные накопители вместе.
func (r *SalesRecord) AddSale(amount, leads int64) {
	r.WeeklySales += amount
	r.MonthlySales += amount
	r.WeeklyLeads += leads
	r.MonthlyLeads += leads
}

// SalesByMetric возвращает сумму продаж по выбранной метрике.
func (r *SalesRecord) SalesByMetric(metric Metric) int64 {
	if metric == MetricMonthlySales {
		return r.MonthlySales
	}
	return r.WeeklySales
}
