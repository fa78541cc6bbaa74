package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeeklyMealPlan(t *testing.T) {
	text := `Here is your plan.

**Monday**
Breakfast: Oats with peanut butter
Lunch: Rajma rice

**Tuesday**
Breakfast: Paneer paratha

**Sunday**
Cheat meal: Biryani`

	plan := ParseWeeklyMealPlan(text)

	assert.Len(t, plan, 3)
	assert.Equal(t, "Breakfast: Oats with peanut butter\nLunch: Rajma rice", plan["Monday"])
	assert.Equal(t, "Breakfast: Paneer paratha", plan["Tuesday"])
	assert.Equal(t, "Cheat meal: Biryani", plan["Sunday"])
	assert.NotContains(t, plan, "Wednesday")
}

func TestParseWeeklyMealPlan_WindowsLineEndings(t *testing.T) {
	plan := ParseWeeklyMealPlan("**Monday**\r\nOats\r\nEggs\r\n\r\n**Tuesday**\r\nDal")

	assert.Equal(t, "Oats\nEggs", plan["Monday"])
	assert.Equal(t, "Dal", plan["Tuesday"])
}

func TestParseWeeklyMealPlan_NoHeadings(t *testing.T) {
	text := "Eat eggs every morning."
	plan := ParseWeeklyMealPlan(text)
	assert.Equal(t, MealPlan{"Monday": text}, plan)
}

func TestParseWeeklyMealPlan_CaseInsensitive(t *testing.T) {
	plan := ParseWeeklyMealPlan("**friday**\nDal khichdi\n**SATURDAY**\nChicken curry")
	assert.Equal(t, "Dal khichdi", plan["Friday"])
	assert.Equal(t, "Chicken curry", plan["Saturday"])
}
