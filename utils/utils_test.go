package utils

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"08031234567", "07011234567", "09121234567", "+2348031234567", " 08031234567 "}
	invalid := []string{"", "8031234567", "08231234567", "0803123456", "+23408031234567", "phone"}

	for _, p := range valid {
		assert.True(t, ValidatePhoneNumber(p), p)
	}
	for _, p := range invalid {
		assert.False(t, ValidatePhoneNumber(p), p)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", got)

	_, err = ParseClock("24:00")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestDayRange(t *testing.T) {
	from, to, err := DayRange("2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 23, to.Hour())
	assert.Equal(t, from.Day(), to.Day())

	from, to, err = DayRange("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	_, _, err = DayRange("2026-03-02", "2026-03-01")
	assert.EqualError(t, err, "to must not be before from")

	_, _, err = DayRange("March", "")
	assert.EqualError(t, err, "from must be YYYY-MM-DD")
}

func TestPagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit, offset := Pagination(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit, "offset": offset})
	})

	tests := []struct {
		query string
		want  string
	}{
		{"", `{"limit":20,"offset":0,"page":1}`},
		{"?page=3&limit=10", `{"limit":10,"offset":20,"page":3}`},
		{"?page=-1&limit=1000", `{"limit":100,"offset":0,"page":1}`},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(body), tt.query)
	}
}

func TestRedactAuthorization(t *testing.T) {
	headers := "Host: example.com\r\nAuthorization: Bearer abc\r\nCookie: access=xyz\r\nAccept: */*"
	got := redactAuthorization(headers)

	assert.NotContains(t, got, "abc")
	assert.NotContains(t, got, "xyz")
	assert.Contains(t, got, "Authorization: [REDACTED]")
	assert.Contains(t, got, "Accept: */*")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitList(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitList(""))
}

func TestRedactJSON(t *testing.T) {
	out, ok := redactJSON([]byte(`{"email":"a@b.ng","password":"hunter22","token":"t","data":{"token":"t2","user":{"id":1}}}`))
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"a@b.ng","password":"[REDACTED]","token":"[REDACTED]","data":{"token":"[REDACTED]","user":{"id":1}}}`, out)

	_, ok = redactJSON([]byte(`[1,2]`))
	assert.False(t, ok)
}
