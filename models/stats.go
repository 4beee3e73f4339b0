package models

import (
	"fmt"
	"time"
)

// ErrorCategory buckets delivery failures for reporting. Dashboards key off
// these exact values, so they must stay stable.
type ErrorCategory string

const (
	ErrorCategoryRateLimiting      ErrorCategory = "rate_limiting"
	ErrorCategoryAuthentication    ErrorCategory = "authentication"
	ErrorCategoryNetworkIssues     ErrorCategory = "network_issues"
	ErrorCategoryAccountSuspension ErrorCategory = "account_suspension"
	ErrorCategoryAutomationFailure ErrorCategory = "automation_failure"
	ErrorCategoryOther             ErrorCategory = "other"
)

// Timeframe is the reporting window for posting statistics
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// Duration converts the timeframe to a lookback window
func (t Timeframe) Duration() (time.Duration, error) {
	switch t {
	case TimeframeDay:
		return 24 * time.Hour, nil
	case TimeframeWeek:
		return 7 * 24 * time.Hour, nil
	case TimeframeMonth:
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown timeframe: %s", t)
	}
}

// PlatformStats counts attempts and successes for one platform
type PlatformStats struct {
	Attempts  int
	Successes int
}

// PostingStats is the aggregate view over a reporting window
type PostingStats struct {
	Timeframe             Timeframe
	TotalAttempts         int
	SuccessfulPosts       int
	FailedPosts           int
	PlatformBreakdown     map[Platform]*PlatformStats
	TopPerformingAccounts map[int64]int
	ErrorBreakdown        map[ErrorCategory]int
}
