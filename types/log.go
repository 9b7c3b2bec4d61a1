package types

import "time"

// LogEntry is a request/response snapshot taken before the fiber context
// is recycled.
type LogEntry struct {
	Method          string
	Route           string
	URL             string
	ClientIP        string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	Latency         time.Duration
	UserUUID        string
	CreatedAt       time.Time
}
