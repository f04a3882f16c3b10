package helpers

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

var validate = validator.New()

// Validate runs the struct's validate tags and returns a readable message on failure.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "gt", "gte":
		return fe.Field() + " is out of range"
	}
	return fe.Field() + " is invalid"
}

// BadRequest is returned for malformed input so the error handler renders a 400 page.
func BadRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// ParamID parses a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "Not found")
	}
	return id, nil
}

// FormString trims the posted value.
func FormString(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// FormInt64 parses an optional id field; blank means zero.
func FormInt64(c *fiber.Ctx, key string) (int64, error) {
	v := FormString(c, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, BadRequest("Invalid value for " + key)
	}
	return n, nil
}

// QueryInt64 parses an optional numeric query parameter; blank or invalid means zero.
func QueryInt64(c *fiber.Ctx, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func FormNullInt64(c *fiber.Ctx, key string) (null.Int64, error) {
	n, err := FormInt64(c, key)
	if err != nil || n == 0 {
		return null.Int64{}, err
	}
	return null.Int64From(n), nil
}

func FormNullString(c *fiber.Ctx, key string) null.String {
	v := FormString(c, key)
	if v == "" {
		return null.String{}
	}
	return null.StringFrom(v)
}

func FormFloat(c *fiber.Ctx, key string, def float64) (float64, error) {
	v := FormString(c, key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, BadRequest("Invalid number for " + key)
	}
	return f, nil
}

func FormInt(c *fiber.Ctx, key string, def int) (int, error) {
	v := FormString(c, key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, BadRequest("Invalid number for " + key)
	}
	return n, nil
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, BadRequest("Invalid date " + strconv.Quote(v) + ", expected YYYY-MM-DD")
	}
	return t, nil
}

// ParseDateOrDateTime accepts either a date or a datetime-local value. The bool reports
// whether only a date was given.
func ParseDateOrDateTime(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(DateTimeLayout, v); err == nil {
		return t, false, nil
	}
	t, err := ParseDate(v)
	return t, true, err
}

// FormDate parses a required date field.
func FormDate(c *fiber.Ctx, key string) (time.Time, error) {
	v := FormString(c, key)
	if v == "" {
		return time.Time{}, BadRequest(key + " is required")
	}
	return ParseDate(v)
}

// FormDateOr parses an optional date field, falling back to def when blank.
func FormDateOr(c *fiber.Ctx, key string, def time.Time) (time.Time, error) {
	v := FormString(c, key)
	if v == "" {
		return def, nil
	}
	return ParseDate(v)
}

func FormNullDate(c *fiber.Ctx, key string) (null.Time, error) {
	v := FormString(c, key)
	if v == "" {
		return null.Time{}, nil
	}
	t, err := ParseDate(v)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(t), nil
}

// QueryDate parses an optional date query parameter.
func QueryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	t, err := ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Today is midnight of the current day in the local zone.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func Now() time.Time {
	return time.Now()
}
