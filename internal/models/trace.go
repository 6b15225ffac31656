package models

import (
	"time"
)

// Exchange represents one observed request/response pair
type Exchange struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Duration           int64     `json:"duration"` // Duration in nanoseconds
	Method             string    `json:"method"`
	URL                string    `json:"url"`
	PathTemplate       string    `json:"pathTemplate"`
	StatusCode         int       `json:"statusCode"`
	ContentType        string    `json:"contentType,omitempty"`
	RequestContentType string    `json:"requestContentType,omitempty"`
	Captured           bool      `json:"captured"` // False when the response body could not be inspected
}

// ExchangeFilter represents filters for querying exchanges
type ExchangeFilter struct {
	Method       string    `json:"method,omitempty"`
	PathTemplate string    `json:"pathTemplate,omitempty"`
	StatusCode   int       `json:"statusCode,omitempty"`
	StartTime    time.Time `json:"startTime,omitempty"`
	EndTime      time.Time `json:"endTime,omitempty"`
	Limit        int       `json:"limit,omitempty"`
}
