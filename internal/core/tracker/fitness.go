package tracker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fitforge/internal/pkg/common"
)

const dateLayout = "2006-01-02"

// CalculateAge 以生日計算足歲
func CalculateAge(dob string, now time.Time) (int, error) {
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0, fmt.Errorf("invalid dob %q: %w", dob, err)
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}

// FormatHeight 公分轉為英尺英吋，例如 5'6"
func FormatHeight(cm float64) string {
	inches := cm / 2.54
	feet := int(math.Floor(inches / 12))
	rest := int(math.Round(math.Mod(inches, 12)))
	if rest == 12 {
		feet++
		rest = 0
	}
	return fmt.Sprintf(`%d'%d"`, feet, rest)
}

// TodayName 英文星期名稱
func TodayName(now time.Time) string {
	return now.Weekday().String()
}

// TodayDate YYYY-MM-DD
func TodayDate(now time.Time) string {
	return now.Format(dateLayout)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseClock 解析 HH:MM，範圍 00:00 到 23:59
func ParseClock(hhmm string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 || !isDigits(h) || !isDigits(m) {
		return 0, 0, common.ErrInvalidReminderTime
	}

	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, common.ErrInvalidReminderTime
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, common.ErrInvalidReminderTime
	}
	return hour, minute, nil
}
