package service

import (
	"context"
	"strings"
)

const (
	replyTrending    = "Here are some trending products right now: Wireless earbuds, Smart watches, Portable projectors, Robot vacuums"
	replySustainable = "I found these sustainable products for you: Bamboo toothbrushes, Recycled backpacks, Solar chargers, Organic cotton clothing"
	replyBudget      = "Based on your preferences, I recommend these products in your budget: Wireless headphones ($299), Smart speaker ($199), Fitness tracker ($129)"
	replyDefault     = "I can help you with product recommendations, comparisons, and finding the best deals."
)

// Assistant answers shopping questions with canned replies picked by keyword.
type Assistant struct{}

func NewAssistant() *Assistant { return &Assistant{} }

// Reply checks keywords in priority order: trending, then sustainable or eco,
// then budget.
func (a *Assistant) Reply(_ context.Context, message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "trending"):
		return replyTrending
	case strings.Contains(m, "sustainable"), strings.Contains(m, "eco"):
		return replySustainable
	case strings.Contains(m, "budget"):
		return replyBudget
	default:
		return replyDefault
	}
}
