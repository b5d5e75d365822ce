// Package leaderboard формирует текст рейтинга для сообщений бота.
// Все функции чистые: никакого состояния и обращений к хранилищу.
package leaderboard

import (
	"SalesBoard-Backend/internal/domain"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Options controls the rendered output.
type Options struct {
	Title     string
	Metric    domain.Metric
	ShowLeads bool
}

// milestone — порог продаж и значок за его достижение.
type milestone struct {
	threshold int64
	label     string
}

// Пороги проверяются сверху вниз, побеждает первый подходящий.
var milestones = []milestone{
	{30000, "💎 30K Club"},
	{20000, "🥇 20K Club"},
	{10000, "🚀 10K Club"},
	{5000, "🎯 5K Club"},
	{4000, "⭐ 4K Starter"},
}

// MilestoneLabel возвращает значок для суммы продаж, либо пустую строку.
func MilestoneLabel(total int64) string {
	for _, m := range milestones {
		if total >= m.threshold {
			return m.label
		}
	}
	return ""
}

// FormatAmount форматирует сумму с разделителями тысяч: 2000 -> "$2,000".
func FormatAmount(n int64) string {
	return "$" + humanize.Comma(n)
}

// Render строит текст рейтинга: заголовок, пустая строка, затем строки
// вида "1. 🔥 Alice – $2,000 | 4 leads 🎯 5K Club".
func Render(records []*domain.SalesRecord, opts Options) string {
	metric := opts.Metric
	if metric == "" {
		metric = domain.MetricWeeklySales
	}

	var b strings.Builder
	b.WriteString(opts.Title)
	b.WriteString("\n\n")

	for i, rec := range records {
		total := rec.SalesByMetric(metric)

		emojiDisplay := ""
		if rec.Emoji != "" {
			emojiDisplay = rec.Emoji + " "
		}

		fmt.Fprintf(&b, "%d. %s%s – %s", i+1, emojiDisplay, rec.Name, FormatAmount(total))
		if opts.ShowLeads {
			leads := rec.WeeklyLeads
			if metric == domain.MetricMonthlySales {
				leads = rec.MonthlyLeads
			}
			fmt.Fprintf(&b, " | %d leads", leads)
		}
		b.WriteString(" ")
		b.WriteString(MilestoneLabel(total))
		b.WriteString("\n")
	}

	return b.String()
}
