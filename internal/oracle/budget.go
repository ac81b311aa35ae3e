package oracle

import "golang.org/x/time/rate"

// Budget enforces the oracle's request quotas locally so we fail fast
// instead of burning remote quota on requests that would be refused.
// Fingerbank's free tier allows 100 requests per hour and 1000 per day.
type Budget struct {
	hourly *rate.Limiter
	daily  *rate.Limiter
}

// NewBudget creates a Budget with the given hourly and daily limits.
// A non-positive limit disables that tier.
func NewBudget(perHour, perDay int) *Budget {
	b := &Budget{}
	if perHour > 0 {
		b.hourly = rate.NewLimiter(rate.Limit(float64(perHour)/3600), perHour)
	}
	if perDay > 0 {
		b.daily = rate.NewLimiter(rate.Limit(float64(perDay)/86400), perDay)
	}
	return b
}

// Allow reports whether a request fits in both quotas and, if so,
// consumes one token from each.
func (b *Budget) Allow() bool {
	if b == nil {
		return true
	}
	if b.hourly != nil && !b.hourly.Allow() {
		return false
	}
	if b.daily != nil && !b.daily.Allow() {
		// The hourly token is already spent; that bias is acceptable
		// since the daily quota is the binding constraint here.
		return false
	}
	return true
}
