package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"reflect"  // Struct tag lookup for field names
	"strings"  // String manipulation
	"sync"     // One-time validator setup
	"time"     // Date parsing

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin's validator hook
	"github.com/go-playground/validator/v10" // Struct validation
)

// FieldError is one rejected input field
type FieldError struct {
	Field   string `json:"field"`   // JSON or query name of the field
	Message string `json:"message"` // Why it was rejected
}

// Messages for fields whose rules are ranges or enumerations, keyed by field or field.tag
var fieldMessages = map[string]string{
	"name":         "Name must be between 2 and 100 characters",
	"email":        "Please provide a valid email address",
	"password":     "Password must be at least 6 characters",
	"password.max": "Password must be at most 72 bytes",
	"rating":       "Rating must be between 1 and 5",
	"comment":      "Comment must be between 3 and 1000 characters",
	"source":       "Source must be one of: web, mobile, email, in-person",
	"page":         "Page must be a positive integer",
	"limit":        "Limit must be between 1 and 100",
	"startDate":    "startDate must be a valid ISO8601 date",
	"endDate":      "endDate must be a valid ISO8601 date",
}

var setupValidator sync.Once

// registerFieldNames makes validation errors report json/form names instead of Go field names
func registerFieldNames() {
	setupValidator.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// fieldMessage renders one validator failure
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	if fe.Tag() == "required" {
		return strings.ToUpper(field[:1]) + field[1:] + " is required"
	}
	if msg, ok := fieldMessages[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

// respondBindError renders a binding failure as 400. Validator failures list every field.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fail(c, http.StatusBadRequest, "Invalid request", nil) // Malformed JSON or wrongly typed values
		return
	}
	fields := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	respondValidation(c, fields)
}

// respondValidation renders field errors found by the handler itself
func respondValidation(c *gin.Context, fields []FieldError) {
	fail(c, http.StatusBadRequest, "Validation error", fields)
}

// Calendar layouts and the period each one names
var calendarLayouts = []struct {
	layout              string
	years, months, days int
}{
	{time.DateOnly, 0, 0, 1},
	{"2006-01", 0, 1, 0},
	{"2006", 1, 0, 0},
}

// Timestamp layouts; the zone-less ones are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05", // Fractional seconds are accepted too
	"2006-01-02T15:04",
}

// parseDate accepts ISO 8601 calendar dates (YYYY, YYYY-MM, YYYY-MM-DD) and timestamps.
// A calendar date is the start of its period in UTC, or its last instant when endOfDay is set.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, l := range calendarLayouts {
		t, err := time.Parse(l.layout, value)
		if err != nil {
			continue
		}
		if endOfDay {
			t = t.AddDate(l.years, l.months, l.days).Add(-time.Nanosecond)
		}
		return &t, nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, err
}

// dateRange parses the startDate/endDate pair, collecting field errors
func dateRange(start, end string) (from, to *time.Time, fields []FieldError) {
	var err error
	if from, err = parseDate(start, false); err != nil {
		fields = append(fields, FieldError{Field: "startDate", Message: fieldMessages["startDate"]})
	}
	if to, err = parseDate(end, true); err != nil {
		fields = append(fields, FieldError{Field: "endDate", Message: fieldMessages["endDate"]})
	}
	return from, to, fields
}
