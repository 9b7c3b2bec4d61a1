package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fastfast-logistics/models/user"
	"fastfast-logistics/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Nigerian mobile numbers: 0XXXXXXXXXX or +234XXXXXXXXXX.
var phonePattern = regexp.MustCompile(`^(?:\+234|0)[789][01]\d{8}$`)

// GetEnv reads an environment variable, falling back when unset or blank.
func GetEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func GetEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

// SplitList splits a comma separated env value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var ErrUserNotFound = errors.New("user not found")

// GetUserByUUID retrieves a user by the UUID carried in the session token.
func GetUserByUUID(db *gorm.DB, uuid string) (*user.User, error) {
	if uuid == "" {
		return nil, errors.New("UUID cannot be empty")
	}

	var userModel user.User
	if err := db.Where("uuid = ?", uuid).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &userModel, nil
}

func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// ParseDate parses a YYYY-MM-DD value in local time.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
}

// ParseClock validates an HH:MM value and returns it normalized.
func ParseClock(value string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// DayRange returns the inclusive bounds of the days named by from and to.
// Empty values leave that side open (zero time).
func DayRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	if from != "" {
		d, err := ParseDate(from)
		if err != nil {
			return start, end, fmt.Errorf("from must be YYYY-MM-DD")
		}
		start = now.With(d).BeginningOfDay()
	}
	if to != "" {
		d, err := ParseDate(to)
		if err != nil {
			return start, end, fmt.Errorf("to must be YYYY-MM-DD")
		}
		end = now.With(d).EndOfDay()
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, fmt.Errorf("to must not be before from")
	}
	return start, end, nil
}

// Pagination clamps page/limit query values.
func Pagination(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, (page - 1) * limit
}

var redactedFields = []string{"password", "token", "access"}

// redactJSON masks credential fields of a JSON object body. ok is false
// when body is not a JSON object.
func redactJSON(body []byte) (string, bool) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	for _, field := range redactedFields {
		if _, ok := payload[field]; ok {
			payload[field] = "[REDACTED]"
		}
	}
	if data, ok := payload["data"].(map[string]interface{}); ok {
		if _, ok := data["token"]; ok {
			data["token"] = "[REDACTED]"
		}
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// sanitizeRequestBody redacts credentials and elides large encoded payloads.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}

	if strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if out, ok := redactJSON(body); ok {
			return out
		}
	}

	if len(body) > 1000 && isLikelyBase64(string(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}
	return string(body)
}

func sanitizeResponseBody(c *fiber.Ctx) string {
	body := c.Response().Body()
	contentType := string(c.Response().Header.ContentType())
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "[BINARY_RESPONSE]"
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if out, ok := redactJSON(body); ok {
			return out
		}
	}
	return string(append([]byte(nil), body...))
}

func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry copies the request/response out of the fiber
// context, which is recycled once the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	entry := types.LogEntry{
		Method:          string([]byte(c.Method())),
		Route:           string([]byte(c.Route().Path)),
		URL:             string([]byte(c.OriginalURL())),
		ClientIP:        string([]byte(c.IP())),
		RequestBody:     sanitizeRequestBody(c),
		ResponseBody:    sanitizeResponseBody(c),
		RequestHeaders:  redactAuthorization(string(c.Request().Header.Header())),
		ResponseHeaders: redactAuthorization(string(c.Response().Header.Header())),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
	if actor, ok := c.Locals("actor").(types.Actor); ok {
		entry.UserUUID = actor.UUID
	}
	return entry
}

func redactAuthorization(headers string) string {
	lines := strings.Split(headers, "\r\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "authorization:") || strings.HasPrefix(lower, "cookie:") || strings.HasPrefix(lower, "set-cookie:") {
			name := line[:strings.Index(line, ":")]
			lines[i] = name + ": [REDACTED]"
		}
	}
	return strings.Join(lines, "\r\n")
}
