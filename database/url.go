package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL constructs a complete database URL from a base URL and
// a database name. Adds sslmode=disable when no sslmode is present and keeps
// existing query parameters intact.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	// If DATABASE_NAME is not set, return the base URL as-is
	if databaseName == "" {
		return baseURL
	}

	// Remove trailing slash from base URL
	baseURL = strings.TrimRight(baseURL, "/")
	var databaseURL string

	// Check if there are existing query parameters
	if strings.Contains(baseURL, "?") {
		// Insert database name before the query parameters
		parts := strings.SplitN(baseURL, "?", 2)
		databaseURL = fmt.Sprintf("%s/%s?%s", parts[0], databaseName, parts[1])
	} else {
		databaseURL = fmt.Sprintf("%s/%s", baseURL, databaseName)
	}

	// Add sslmode=disable if not already present
	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "&"
		if !strings.Contains(databaseURL, "?") {
			separator = "?"
		}
		databaseURL = fmt.Sprintf("%s%ssslmode=disable", databaseURL, separator)
	}

	return databaseURL
}
