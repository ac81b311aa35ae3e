package oracle

import (
	"errors"
	"fmt"
	"testing"
)

func TestBucket_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  ScoreBucket
	}{
		{0, BucketVeryLow},
		{29, BucketVeryLow},
		{30, BucketModerate},
		{40, BucketModerate},
		{50, BucketModerate},
		{51, BucketHigh},
		{75, BucketHigh},
		{76, BucketVeryHigh},
		{100, BucketVeryHigh},
	}

	for _, tt := range tests {
		if got := Bucket(tt.score); got != tt.want {
			t.Errorf("Bucket(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestErrorCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNoMatch, "no_match"},
		{ErrRateLimited, "rate_limited"},
		{fmt.Errorf("wrapped: %w", ErrRateLimited), "rate_limited"},
		{errors.New("connection refused"), "failed"},
	}

	for _, tt := range tests {
		if got := ErrorCategory(tt.err); got != tt.want {
			t.Errorf("ErrorCategory(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestBudget_Allow(t *testing.T) {
	b := NewBudget(2, 0)

	if !b.Allow() {
		t.Fatal("first request should be allowed")
	}
	if !b.Allow() {
		t.Fatal("second request should be allowed")
	}
	if b.Allow() {
		t.Error("third request should exceed the hourly burst")
	}
}

func TestBudget_DailyLimit(t *testing.T) {
	b := NewBudget(100, 1)

	if !b.Allow() {
		t.Fatal("first request should be allowed")
	}
	if b.Allow() {
		t.Error("second request should exceed the daily burst")
	}
}

func TestBudget_NilAllowsEverything(t *testing.T) {
	var b *Budget
	for i := 0; i < 10; i++ {
		if !b.Allow() {
			t.Fatal("nil budget should allow all requests")
		}
	}
}
