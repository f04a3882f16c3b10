package helpers

import (
	"fmt"
	"html/template"
	"time"

	"github.com/bytedance/sonic"
	"github.com/volatiletech/null/v8"
)

// TemplateFuncs are the helpers available to every page template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"json":     toJSON,
		"date":     formatDate,
		"datetime": formatDateTime,
		"money":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"inputDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(DateLayout)
		},
	}
}

// toJSON embeds chart data into a page. The result is trusted as a JS value.
func toJSON(v interface{}) (template.JS, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("02 Jan 2006")
	case null.Time:
		if !t.Valid {
			return "-"
		}
		return t.Time.Format("02 Jan 2006")
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.Format("02 Jan 2006")
	}
	return "-"
}

func formatDateTime(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return "-"
		}
		return t.Format("02 Jan 2006 15:04")
	case null.Time:
		if !t.Valid {
			return "-"
		}
		return t.Time.Format("02 Jan 2006 15:04")
	}
	return "-"
}
