package pipeline

// The upstream sources present the same logical field under several
// shapes: a flat key (webhook-simplified records), a flat key with the
// upstream display name, or a nested structured-page property
// ("properties.Date.date.start"). Rather than modeling each source
// with its own type, resolution is a data-driven lookup over an
// ordered list of candidate access paths per logical field. The first
// path that yields a non-nil value wins.

type pathStep struct {
	key   string
	index int
	isIdx bool
}

func k(key string) pathStep { return pathStep{key: key} }
func at(i int) pathStep     { return pathStep{index: i, isIdx: true} }

type fieldPath []pathStep

// Logical field names accepted by Resolve.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldName      = "name"
	FieldStatus    = "status"
	FieldPlatform  = "platform"
	FieldType      = "type"
	FieldDate      = "date"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
	FieldURL       = "url"

	FieldGoalLinkedin  = "goal.linkedin"
	FieldGoalInstagram = "goal.instagram"
	FieldGoalTwitter   = "goal.twitter"
	FieldGoalTiktok    = "goal.tiktok"
	FieldGoalYoutube   = "goal.youtube"
)

var fieldPaths = map[string][]fieldPath{
	FieldID: {
		{k("id")},
	},
	FieldTitle: {
		{k("title")},
		{k("Name"), k("title"), at(0), k("plain_text")},
		{k("properties"), k("Name"), k("title"), at(0), k("plain_text")},
	},
	FieldName: {
		{k("name")},
		{k("Name"), k("title"), at(0), k("plain_text")},
		{k("properties"), k("Name"), k("title"), at(0), k("plain_text")},
	},
	FieldStatus: {
		{k("status")},
		{k("Status"), k("status"), k("name")},
		{k("properties"), k("Status"), k("status"), k("name")},
		{k("Status"), k("select"), k("name")},
		{k("properties"), k("Status"), k("select"), k("name")},
	},
	FieldPlatform: {
		{k("platform")},
		{k("Platform"), k("select"), k("name")},
		{k("properties"), k("Platform"), k("select"), k("name")},
	},
	FieldType: {
		{k("type")},
		{k("Type"), k("select"), k("name")},
		{k("properties"), k("Type"), k("select"), k("name")},
	},
	FieldDate: {
		{k("date")},
		{k("Date to publish")},
		{k("Date"), k("date"), k("start")},
		{k("Date to publish"), k("date"), k("start")},
		{k("properties"), k("Date"), k("date"), k("start")},
		{k("properties"), k("Date to publish"), k("date"), k("start")},
	},
	FieldStartDate: {
		{k("startDate")},
		{k("Date"), k("date"), k("start")},
		{k("properties"), k("Date"), k("date"), k("start")},
	},
	FieldEndDate: {
		{k("endDate")},
		{k("Date"), k("date"), k("end")},
		{k("properties"), k("Date"), k("date"), k("end")},
	},
	FieldURL: {
		{k("url")},
		{k("URL")},
		{k("properties"), k("URL"), k("url")},
	},
	FieldGoalLinkedin: {
		{k("goals"), k("linkedin")},
		{k("LinkedInGoal"), k("number")},
		{k("properties"), k("LinkedInGoal"), k("number")},
	},
	FieldGoalInstagram: {
		{k("goals"), k("instagram")},
		{k("InstagramGoal"), k("number")},
		{k("properties"), k("InstagramGoal"), k("number")},
	},
	FieldGoalTwitter: {
		{k("goals"), k("twitter")},
		{k("TwitterGoal"), k("number")},
		{k("properties"), k("TwitterGoal"), k("number")},
	},
	FieldGoalTiktok: {
		{k("goals"), k("tiktok")},
		{k("TikTokGoal"), k("number")},
		{k("properties"), k("TikTokGoal"), k("number")},
	},
	FieldGoalYoutube: {
		{k("goals"), k("youtube")},
		{k("YoutubeGoal"), k("number")},
		{k("properties"), k("YoutubeGoal"), k("number")},
	},
}

// Resolve extracts the value for a logical field from a raw record of
// unknown shape. It tries each candidate path in order and returns the
// first defined, non-nil value. Missing intermediate keys, wrong types
// and out-of-range indexes all count as "not found"; Resolve never
// panics on malformed input.
func Resolve(record map[string]interface{}, field string) (interface{}, bool) {
	paths, ok := fieldPaths[field]
	if !ok {
		return nil, false
	}
	for _, path := range paths {
		if v, ok := walk(record, path); ok {
			return v, true
		}
	}
	return nil, false
}

func walk(record map[string]interface{}, path fieldPath) (interface{}, bool) {
	var current interface{} = record
	for _, step := range path {
		if step.isIdx {
			arr, ok := current.([]interface{})
			if !ok || step.index < 0 || step.index >= len(arr) {
				return nil, false
			}
			current = arr[step.index]
			continue
		}
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[step.key]
		if !ok {
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// ResolveString resolves a field as a string, returning def when the
// field is absent, nil or not string-valued. Empty strings count as
// absent so callers get their documented defaults.
func ResolveString(record map[string]interface{}, field, def string) string {
	v, ok := Resolve(record, field)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// ResolveInt resolves a numeric field as an int, returning def when
// absent or non-numeric. JSON numbers decode as float64; both float64
// and int are accepted.
func ResolveInt(record map[string]interface{}, field string, def int) int {
	v, ok := Resolve(record, field)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}
