package service

import (
	"strings"

	"viralcast/models"
)

// errorMarkers maps marker phrases to categories. Classification walks the
// list in order and the first match wins, so more specific phrases come
// before generic ones.
var errorMarkers = []struct {
	marker   string
	category models.ErrorCategory
}{
	{"rate limit", models.ErrorCategoryRateLimiting},
	{"too many requests", models.ErrorCategoryRateLimiting},
	{"429", models.ErrorCategoryRateLimiting},
	{"quota exceeded", models.ErrorCategoryRateLimiting},

	{"unauthorized", models.ErrorCategoryAuthentication},
	{"401", models.ErrorCategoryAuthentication},
	{"invalid token", models.ErrorCategoryAuthentication},
	{"token expired", models.ErrorCategoryAuthentication},
	{"access token", models.ErrorCategoryAuthentication},
	{"authentication", models.ErrorCategoryAuthentication},

	{"suspended", models.ErrorCategoryAccountSuspension},
	{"banned", models.ErrorCategoryAccountSuspension},
	{"account disabled", models.ErrorCategoryAccountSuspension},
	{"account locked", models.ErrorCategoryAccountSuspension},

	{"automation", models.ErrorCategoryAutomationFailure},
	{"session cookie", models.ErrorCategoryAutomationFailure},
	{"session expired", models.ErrorCategoryAutomationFailure},
	{"browser", models.ErrorCategoryAutomationFailure},
	{"selector not found", models.ErrorCategoryAutomationFailure},

	{"timeout", models.ErrorCategoryNetworkIssues},
	{"deadline exceeded", models.ErrorCategoryNetworkIssues},
	{"connection refused", models.ErrorCategoryNetworkIssues},
	{"connection reset", models.ErrorCategoryNetworkIssues},
	{"network", models.ErrorCategoryNetworkIssues},
	{"no such host", models.ErrorCategoryNetworkIssues},
	{"502", models.ErrorCategoryNetworkIssues},
	{"503", models.ErrorCategoryNetworkIssues},
	{"unexpected eof", models.ErrorCategoryNetworkIssues},
}

// ClassifyError buckets a raw delivery error message into a fixed category.
// Reporting-only today: the rotation loop never branches on the category,
// but dashboards key off the returned values.
func ClassifyError(message string) models.ErrorCategory {
	if message == "" {
		return models.ErrorCategoryOther
	}
	lowered := strings.ToLower(message)
	for _, m := range errorMarkers {
		if strings.Contains(lowered, m.marker) {
			return m.category
		}
	}
	return models.ErrorCategoryOther
}
