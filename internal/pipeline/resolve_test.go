package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FlatKeysWin(t *testing.T) {
	record := map[string]interface{}{
		"title":  "Flat title",
		"status": "Published",
	}

	v, ok := Resolve(record, FieldTitle)
	assert.True(t, ok)
	assert.Equal(t, "Flat title", v)

	v, ok = Resolve(record, FieldStatus)
	assert.True(t, ok)
	assert.Equal(t, "Published", v)
}

func TestResolve_StructuredPageProperties(t *testing.T) {
	record := map[string]interface{}{
		"id": "page-1",
		"properties": map[string]interface{}{
			"Name": map[string]interface{}{
				"title": []interface{}{
					map[string]interface{}{"plain_text": "Launch teaser"},
				},
			},
			"Status": map[string]interface{}{
				"status": map[string]interface{}{"name": "Done"},
			},
			"Platform": map[string]interface{}{
				"select": map[string]interface{}{"name": "LinkedIn"},
			},
			"Date": map[string]interface{}{
				"date": map[string]interface{}{"start": "2026-03-01"},
			},
			"LinkedInGoal": map[string]interface{}{"number": float64(12)},
		},
	}

	assert.Equal(t, "Launch teaser", ResolveString(record, FieldTitle, "fallback"))
	assert.Equal(t, "Done", ResolveString(record, FieldStatus, "draft"))
	assert.Equal(t, "LinkedIn", ResolveString(record, FieldPlatform, "unknown"))
	assert.Equal(t, "2026-03-01", ResolveString(record, FieldDate, ""))
	assert.Equal(t, 12, ResolveInt(record, FieldGoalLinkedin, 0))
}

func TestResolve_DisplayNameDateKey(t *testing.T) {
	record := map[string]interface{}{
		"Date to publish": "2026-04-15T10:00:00Z",
	}
	assert.Equal(t, "2026-04-15T10:00:00Z", ResolveString(record, FieldDate, ""))
}

func TestResolve_MalformedShapesNeverPanic(t *testing.T) {
	records := []map[string]interface{}{
		nil,
		{"properties": "not a map"},
		{"properties": map[string]interface{}{"Name": map[string]interface{}{"title": []interface{}{}}}},
		{"Name": map[string]interface{}{"title": "not an array"}},
		{"title": nil},
	}

	for _, record := range records {
		_, ok := Resolve(record, FieldTitle)
		assert.False(t, ok)
	}
}

func TestResolveString_EmptyCountsAsAbsent(t *testing.T) {
	record := map[string]interface{}{"title": ""}
	assert.Equal(t, "Untitled", ResolveString(record, FieldTitle, "Untitled"))
}

func TestResolveInt_NumericShapes(t *testing.T) {
	assert.Equal(t, 7, ResolveInt(map[string]interface{}{
		"goals": map[string]interface{}{"twitter": float64(7)},
	}, FieldGoalTwitter, 0))
	assert.Equal(t, 3, ResolveInt(map[string]interface{}{
		"goals": map[string]interface{}{"twitter": 3},
	}, FieldGoalTwitter, 0))
	assert.Equal(t, 5, ResolveInt(map[string]interface{}{
		"goals": map[string]interface{}{"twitter": "many"},
	}, FieldGoalTwitter, 5))
}

func TestResolve_UnknownField(t *testing.T) {
	_, ok := Resolve(map[string]interface{}{"x": 1}, "no-such-field")
	assert.False(t, ok)
}
