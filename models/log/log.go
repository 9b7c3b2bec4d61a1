package log

import (
	"time"
)

// Log is one audited API call. Credentials are redacted before insert.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	Route           string    `gorm:"type:varchar(255);index" json:"route"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	ClientIP        string    `gorm:"type:varchar(64)" json:"clientIp"`
	RequestBody     string    `gorm:"type:text" json:"requestBody"`
	RequestHeaders  string    `gorm:"type:text" json:"requestHeaders"`
	ResponseBody    string    `gorm:"type:text" json:"responseBody"`
	ResponseHeaders string    `gorm:"type:text" json:"responseHeaders"`
	StatusCode      int       `gorm:"type:int;index" json:"statusCode"`
	LatencyMs       int64     `gorm:"not null;default:0" json:"latencyMs"`
	UserUUID        string    `gorm:"type:varchar(64);index" json:"userUuid,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Log) TableName() string {
	return "logs"
}
