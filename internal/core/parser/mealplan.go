package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// WeekDays 週計畫的日期順序
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var dayBlockRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(WeekDays))
	next := strings.Join(WeekDays, "|")
	for _, day := range WeekDays {
		res[day] = regexp.MustCompile(fmt.Sprintf(`(?is)\*\*%s\*\*(.*?)(?:\*\*(?:%s)|$)`, day, next))
	}
	return res
}()

// MealPlan 每日餐點內容，key 為英文星期名稱
type MealPlan map[string]string

// ParseWeeklyMealPlan 以 **Monday** 這類粗體標題切分七日菜單。
// 一天都找不到時，整段原文放在 Monday。
func ParseWeeklyMealPlan(text string) MealPlan {
	plan := MealPlan{}
	normalized := normalizeNewlines(text)
	for _, day := range WeekDays {
		m := dayBlockRes[day].FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		plan[day] = strings.TrimSpace(m[1])
	}

	if len(plan) == 0 {
		plan[WeekDays[0]] = text
	}
	return plan
}
