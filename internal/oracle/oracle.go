// Package oracle wraps the Fingerbank combinations API. The classify
// module consults it first and falls back to local rule tables when it
// is unavailable, rate limited, or has no match for a fingerprint.
package oracle

import "errors"

// Sentinel errors. All three route the caller to fallback
// classification; they are distinguished only for observability.
var (
	// ErrNoMatch means the oracle had no record for the fingerprint.
	ErrNoMatch = errors.New("oracle: no match for fingerprint")
	// ErrRateLimited means the local budget or the remote API refused
	// the request for quota reasons.
	ErrRateLimited = errors.New("oracle: rate limit exceeded")
)

// ErrorCategory labels an oracle error for metrics and result records.
func ErrorCategory(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoMatch):
		return "no_match"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "failed"
	}
}

// QueryInput carries the fingerprint attributes sent to the oracle.
// Empty fields are omitted from the request.
type QueryInput struct {
	Fingerprint string
	VendorClass string
	Hostname    string
	FQDN        string
}

// Candidate is a successful oracle answer.
type Candidate struct {
	DeviceID        int64
	Name            string
	Hierarchy       []string
	DeviceType      string
	OperatingSystem string
	Manufacturer    string
	Score           int
}

// ScoreBucket is the qualitative tier of an oracle confidence score.
type ScoreBucket string

const (
	BucketVeryLow  ScoreBucket = "very_low"
	BucketModerate ScoreBucket = "moderate"
	BucketHigh     ScoreBucket = "high"
	BucketVeryHigh ScoreBucket = "very_high"
)

// Bucket maps a 0-100 oracle score to its qualitative tier. The
// boundaries are inclusive on the moderate side: 50 is moderate,
// 51 is high.
func Bucket(score int) ScoreBucket {
	switch {
	case score < 30:
		return BucketVeryLow
	case score <= 50:
		return BucketModerate
	case score <= 75:
		return BucketHigh
	default:
		return BucketVeryHigh
	}
}
