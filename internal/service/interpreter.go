package service

import (
	"SalesBoard-Backend/internal/config"
	"SalesBoard-Backend/internal/domain"
	"SalesBoard-Backend/internal/leaderboard"
	"SalesBoard-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Notifier отправляет текст в чат. Ошибка отправки не фатальна: уже
// примененные изменения хранилища не откатываются.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Тексты ответов бота.
const (
	replySetEmojiUsage = "Usage: !setemoji 😎"
	replySaleFormat    = "⚠️ Couldn't read that sale. Use +1500 or +1500 3 (amount, then leads)."
	replyUnauthorized  = "⛔ Unauthorized."
	replyWeeklyReset   = "📅 Weekly totals reset by admin."
	replyMonthlyReset  = "🗓 Monthly totals reset by admin."
)

// Interpreter разбирает входящие сообщения, изменяет хранилище и
// отвечает в чат. Не хранит состояния между сообщениями.
type Interpreter struct {
	storage  repository.Storage
	notifier Notifier
	botCfg   *config.Bot
	boardCfg *config.Leaderboard
	log      *zap.Logger
	commands []commandSpec
}

// commandSpec — пара (распознаватель, обработчик). Порядок в списке
// задает приоритет: побеждает первая подошедшая команда.
type commandSpec struct {
	name   string
	match  func(text string) bool
	handle func(ctx context.Context, sender, text string) error
}

// NewInterpreter создает интерпретатор команд.
func NewInterpreter(storage repository.Storage, notifier Notifier, botCfg *config.Bot, boardCfg *config.Leaderboard, log *zap.Logger) *Interpreter {
	i := &Interpreter{
		storage:  storage,
		notifier: notifier,
		botCfg:   botCfg,
		boardCfg: boardCfg,
		log:      log,
	}

	// Фиксированный порядок проверки команд.
	i.commands = []commandSpec{
		{
			name:   "setemoji",
			match:  func(text string) bool { return hasKeywordPrefix(text, cmdSetEmoji) },
			handle: i.handleSetEmoji,
		},
		{
			name:   "sale",
			match:  func(text string) bool { return strings.HasPrefix(text, salePrefix) },
			handle: i.handleSale,
		},
		{
			name:   "mytotal",
			match:  func(text string) bool { return strings.EqualFold(text, cmdMyTotal) },
			handle: i.handleMyTotal,
		},
		{
			name:   "resetweekly",
			match:  func(text string) bool { return strings.EqualFold(text, cmdResetWeekly) },
			handle: i.handleResetWeekly,
		},
		{
			name:   "resetmonthly",
			match:  func(text string) bool { return strings.EqualFold(text, cmdResetMonthly) },
			handle: i.handleResetMonthly,
		},
	}

	return i
}

// HandleMessage обрабатывает одно входящее сообщение. Возвращает ошибку
// только при отказе хранилища; ошибки пользователя уходят ответами в чат.
// Нераспознанный текст игнорируется без ответа.
func (i *Interpreter) HandleMessage(ctx context.Context, msg domain.InboundMessage) error {
	for _, cmd := range i.commands {
		if !cmd.match(msg.Text) {
			continue
		}
		i.log.Debug("command matched",
			zap.String("command", cmd.name),
			zap.String("sender", msg.SenderName))
		return cmd.handle(ctx, msg.SenderName, msg.Text)
	}
	return nil
}

func (i *Interpreter) handleSetEmoji(ctx context.Context, sender, text string) error {
	emoji := emojiArg(text)
	if emoji == "" {
		i.notify(ctx, replySetEmojiUsage)
		return nil
	}

	if err := i.storage.SetEmoji(ctx, sender, emoji); err != nil {
		return fmt.Errorf("failed to set emoji: %w", err)
	}

	i.notify(ctx, fmt.Sprintf("%s set their leaderboard emoji to %s", sender, emoji))
	return nil
}

func (i *Interpreter) handleSale(ctx context.Context, sender, text string) error {
	entry, ok := parseSaleEntry(strings.TrimPrefix(text, salePrefix))
	if !ok {
		i.notify(ctx, replySaleFormat)
		return nil
	}

	if err := i.storage.RecordSale(ctx, sender, entry.Amount, entry.Leads); err != nil {
		// Отрицательные значения не проходят через parseSaleEntry, так что
		// ошибки валидации тут не ждем, но на всякий случай отвечаем в чат.
		if errors.Is(err, repository.ErrNegativeAmount) || errors.Is(err, repository.ErrNegativeLeads) {
			i.notify(ctx, replySaleFormat)
			return nil
		}
		return fmt.Errorf("failed to record sale: %w", err)
	}

	ranked, err := i.storage.ListRanked(ctx, domain.MetricWeeklySales)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	i.notify(ctx, leaderboard.Render(ranked, leaderboard.Options{
		Title:     i.boardCfg.Title,
		Metric:    domain.MetricWeeklySales,
		ShowLeads: i.botCfg.ShowLeads,
	}))
	return nil
}

func (i *Interpreter) handleMyTotal(ctx context.Context, sender, _ string) error {
	rec, err := i.storage.GetStats(ctx, sender)
	if errors.Is(err, repository.ErrRecordNotFound) {
		i.notify(ctx, fmt.Sprintf("%s, you have no recorded sales yet.", sender))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get totals: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s's Totals\n\n", sender)
	fmt.Fprintf(&b, "Weekly: %s", leaderboard.FormatAmount(rec.WeeklySales))
	if i.botCfg.ShowLeads {
		fmt.Fprintf(&b, " | %d leads", rec.WeeklyLeads)
	}
	fmt.Fprintf(&b, "\nMonthly: %s", leaderboard.FormatAmount(rec.MonthlySales))
	if i.botCfg.ShowLeads {
		fmt.Fprintf(&b, " | %d leads", rec.MonthlyLeads)
	}

	i.notify(ctx, b.String())
	return nil
}

func (i *Interpreter) handleResetWeekly(ctx context.Context, sender, _ string) error {
	if !i.botCfg.IsAdmin(sender) {
		i.log.Warn("unauthorized reset attempt", zap.String("sender", sender))
		i.notify(ctx, replyUnauthorized)
		return nil
	}

	if err := i.storage.ResetWeekly(ctx); err != nil {
		return fmt.Errorf("failed to reset weekly totals: %w", err)
	}

	i.notify(ctx, replyWeeklyReset)
	return nil
}

func (i *Interpreter) handleResetMonthly(ctx context.Context, sender, _ string) error {
	if !i.botCfg.IsAdmin(sender) {
		i.log.Warn("unauthorized reset attempt", zap.String("sender", sender))
		i.notify(ctx, replyUnauthorized)
		return nil
	}

	if err := i.storage.ResetMonthly(ctx); err != nil {
		return fmt.Errorf("failed to reset monthly totals: %w", err)
	}

	i.notify(ctx, replyMonthlyReset)
	return nil
}

// notify отправляет ответ в чат. Ошибка отправки логируется и глотается:
// изменение состояния уже зафиксировано, и вебхук все равно отвечает успехом.
func (i *Interpreter) notify(ctx context.Context, text string) {
	if err := i.notifier.Send(ctx, text); err != nil {
		i.log.Error("failed to send chat notification", zap.Error(err))
	}
}
