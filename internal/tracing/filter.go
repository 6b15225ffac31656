package tracing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prasenjit/go-oasgen/internal/models"
)

// ParseFilter reads an exchange filter from query parameters: method, path
// (a path template), status, since/until (RFC 3339) and limit. limit
// defaults to defaultLimit.
func ParseFilter(q url.Values, defaultLimit int) (*models.ExchangeFilter, error) {
	filter := &models.ExchangeFilter{
		Method:       strings.ToUpper(q.Get("method")),
		PathTemplate: q.Get("path"),
		Limit:        defaultLimit,
	}

	if status := q.Get("status"); status != "" {
		code, err := strconv.Atoi(status)
		if err != nil {
			return nil, fmt.Errorf("invalid status: %s", status)
		}
		filter.StatusCode = code
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid limit: %s", limit)
		}
		filter.Limit = n
	}
	for key, dst := range map[string]*time.Time{"since": &filter.StartTime, "until": &filter.EndTime} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", key, raw)
		}
		*dst = t
	}

	return filter, nil
}

// Matches reports whether exchange passes filter. Limit is not considered.
func Matches(exchange *models.Exchange, filter *models.ExchangeFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Method != "" && exchange.Method != filter.Method {
		return false
	}
	if filter.PathTemplate != "" && exchange.PathTemplate != filter.PathTemplate {
		return false
	}
	if filter.StatusCode != 0 && exchange.StatusCode != filter.StatusCode {
		return false
	}
	if !filter.StartTime.IsZero() && exchange.Timestamp.Before(filter.StartTime) {
		return false
	}
	if !filter.EndTime.IsZero() && exchange.Timestamp.After(filter.EndTime) {
		return false
	}
	return true
}
