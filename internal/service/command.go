package service

import (
	"strconv"
	"strings"
)

// Префиксы и ключевые слова команд. Ключевые слова сравниваются без учета
// регистра, аргументы — с учетом.
const (
	cmdSetEmoji     = "!setemoji"
	cmdMyTotal      = "!mytotal"
	cmdResetWeekly  = "!resetweekly"
	cmdResetMonthly = "!resetmonthly"
	salePrefix      = "+"
)

// saleEntry — разобранная команда продажи: сумма и число лидов.
type saleEntry struct {
	Amount int64
	Leads  int64
}

// parseSaleEntry разбирает остаток после "+": либо одна сумма,
// либо сумма и число лидов через один пробел. Любая другая форма,
// включая пробелы по краям, — ошибка формата (ok == false).
func parseSaleEntry(remainder string) (saleEntry, bool) {
	tokens := strings.Split(remainder, " ")

	switch len(tokens) {
	case 1:
		amount, err := parseCount(tokens[0])
		if err != nil {
			return saleEntry{}, false
		}
		return saleEntry{Amount: amount}, true
	case 2:
		amount, err := parseCount(tokens[0])
		if err != nil {
			return saleEntry{}, false
		}
		leads, err := parseCount(tokens[1])
		if err != nil {
			return saleEntry{}, false
		}
		return saleEntry{Amount: amount, Leads: leads}, true
	default:
		return saleEntry{}, false
	}
}

// parseCount принимает только токены целиком из цифр, поэтому знаки,
// разделители и дроби отбрасываются еще до ParseInt.
func parseCount(token string) (int64, error) {
	if !isAllDigits(token) {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(token, 10, 64)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// emojiArg возвращает аргумент команды !setemoji: все после первого
// пробела, с обрезанными краями. Пустая строка — аргумента нет.
func emojiArg(text string) string {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// hasKeywordPrefix проверяет префикс без учета регистра.
func hasKeywordPrefix(text, keyword string) bool {
	return len(text) >= len(keyword) && strings.EqualFold(text[:len(keyword)], keyword)
}
