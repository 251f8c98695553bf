package models

// EventType classifies a marketing event.
type EventType string

const (
	EventFlagship  EventType = "flagship"
	EventStandard  EventType = "standard"
	EventCommunity EventType = "community"
	EventVirtual   EventType = "virtual"
)

// EventStatus is the lifecycle state of a marketing event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventActive    EventStatus = "active"
	EventCompleted EventStatus = "completed"
)

// Platform identifies a social or content channel after normalization.
type Platform string

const (
	PlatformLinkedin  Platform = "linkedin"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformTiktok    Platform = "tiktok"
	PlatformYoutube   Platform = "youtube"
	PlatformEmail     Platform = "email"
	PlatformBlog      Platform = "blog"
	PlatformUnknown   Platform = "unknown"
)

// SocialPlatforms are the five channels tracked in goals and the
// platform distribution. Email and blog appear only in the content
// pipeline, never in goals.
var SocialPlatforms = []Platform{
	PlatformLinkedin,
	PlatformInstagram,
	PlatformTwitter,
	PlatformTiktok,
	PlatformYoutube,
}

// ContentStatus is a content item's workflow stage after normalization.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusApproved  ContentStatus = "approved"
	StatusPublished ContentStatus = "published"
	StatusScheduled ContentStatus = "scheduled"
)

// SocialGoals maps each tracked platform to a target post count.
// Platforms without an explicit goal default to 0.
type SocialGoals struct {
	Linkedin  int `json:"linkedin"`
	Instagram int `json:"instagram"`
	Twitter   int `json:"twitter"`
	Tiktok    int `json:"tiktok"`
	Youtube   int `json:"youtube"`
}

// ForPlatform returns the goal for a single platform, 0 for platforms
// that carry no goals (email, blog, unknown).
func (g SocialGoals) ForPlatform(p Platform) int {
	switch p {
	case PlatformLinkedin:
		return g.Linkedin
	case PlatformInstagram:
		return g.Instagram
	case PlatformTwitter:
		return g.Twitter
	case PlatformTiktok:
		return g.Tiktok
	case PlatformYoutube:
		return g.Youtube
	default:
		return 0
	}
}

// Total sums the goals across all tracked platforms.
func (g SocialGoals) Total() int {
	return g.Linkedin + g.Instagram + g.Twitter + g.Tiktok + g.Youtube
}

// PostMetric is a single measured post linked to an event.
type PostMetric struct {
	Platform    Platform `json:"platform"`
	PostID      string   `json:"postId"`
	Timestamp   string   `json:"timestamp"`
	Impressions int      `json:"impressions"`
	Likes       int      `json:"likes"`
	Comments    int      `json:"comments"`
	Shares      int      `json:"shares"`
}

// MarketingEvent is one tracked campaign or event. The JSON field names
// are the wire format of the persisted events document and must stay
// stable for round-trip fidelity.
//
// Dates are ISO-8601 strings as delivered by upstream; they are parsed
// lazily at computation time so that a malformed upstream value survives
// a load/save round trip untouched.
//
// Posts is nil until the daily sync has measured the event; nil means
// "not yet measured", an empty slice means "measured, nothing found".
// The field is serialized without omitempty so the distinction survives
// a load/save round trip.
type MarketingEvent struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      EventType    `json:"type"`
	Status    EventStatus  `json:"status"`
	StartDate string       `json:"startDate"`
	EventDate string       `json:"eventDate"`
	EndDate   string       `json:"endDate"`
	Goals     SocialGoals  `json:"goals"`
	Posts     []PostMetric `json:"posts"`
}

// ContentItem is one piece of content in the pipeline. Platform and
// Status always carry normalized values; raw upstream labels never
// leak past the aggregator.
type ContentItem struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Platform Platform      `json:"platform"`
	Type     string        `json:"type"`
	Status   ContentStatus `json:"status"`
	Date     string        `json:"date"`
	URL      string        `json:"url,omitempty"`
}

// PipelineStats is the derived content-pipeline summary. It is
// recomputed on every aggregation pass and never persisted.
type PipelineStats struct {
	Draft                int              `json:"draft"`
	Approved             int              `json:"approved"`
	Published            int              `json:"published"`
	RecentActivity       []ContentItem    `json:"recentActivity"`
	ThisMonthCount       int              `json:"thisMonthCount"`
	PlatformDistribution map[Platform]int `json:"platformDistribution"`
}

// TotalItems returns the number of classified items.
func (p PipelineStats) TotalItems() int {
	return p.Draft + p.Approved + p.Published
}

// DashboardStats is the top-level summary served to the dashboard.
type DashboardStats struct {
	TotalPosts    int           `json:"totalPosts"`
	Health        string        `json:"health"`
	NextEventDays int           `json:"nextEventDays"`
	Pipeline      PipelineStats `json:"pipeline"`
}
