package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestTemplateDates(t *testing.T) {
	day := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "04 Mar 2024", formatDate(day))
	assert.Equal(t, "04 Mar 2024", formatDate(null.TimeFrom(day)))
	assert.Equal(t, "-", formatDate(null.Time{}))
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "04 Mar 2024 09:30", formatDateTime(day))
}

func TestTemplateJSON(t *testing.T) {
	js, err := toJSON(map[string]int{"present": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"present":3}`, string(js))
}

func TestTemplateNumbers(t *testing.T) {
	funcs := TemplateFuncs()
	assert.Equal(t, "12.50", funcs["money"].(func(float64) string)(12.5))
	assert.Equal(t, "87.5%", funcs["pct"].(func(float64) string)(87.5))
}
