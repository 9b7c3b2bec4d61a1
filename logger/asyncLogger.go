package logger

import (
	"sync"

	logModel "fastfast-logistics/models/log"
	"fastfast-logistics/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request audits to the logs table from a single
// background goroutine.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (l *AsyncLogger) ProcessLog() {
	defer close(l.done)
	Debug("request audit logger started")

	for entry := range l.channel {
		row := logModel.Log{
			Method:          entry.Method,
			Route:           entry.Route,
			URL:             entry.URL,
			ClientIP:        entry.ClientIP,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			LatencyMs:       entry.Latency.Milliseconds(),
			UserUUID:        entry.UserUUID,
			CreatedAt:       entry.CreatedAt,
		}
		if err := l.db.Create(&row).Error; err != nil {
			Error("Failed to store request audit for "+entry.Method+" "+entry.URL, err)
		}
	}
}

// Log queues an entry; it is dropped when the buffer is full.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case l.channel <- entry:
	default:
		Warning("request audit buffer full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for the queue to drain.
func (l *AsyncLogger) Close() {
	l.once.Do(func() {
		close(l.channel)
		<-l.done
	})
}
