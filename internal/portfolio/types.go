package portfolio

// ConfigFileName is the reserved per-repository override file name.
const ConfigFileName = ".portfolio.json"

// Status values recognized for a portfolio entry.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusArchived   = "Archived"
)

// Game media types recognized in media.game.type.
const (
	GameTypeUnityWebGL = "unity-webgl"
	GameTypeItch       = "itch"
)

// RepoInfo is the repository summary supplied by a descriptor source.
// It is read-only input; the core never mutates it.
type RepoInfo struct {
	Name          string
	FullName      string
	Description   string
	URL           string
	Homepage      string
	Topics        []string
	Language      string
	Archived      bool
	PushedAt      string // RFC 3339 timestamp of the last push
	DefaultBranch string
}

// GameMedia points at a playable build of the project.
type GameMedia struct {
	Type string `json:"type"` // unity-webgl or itch
	URL  string `json:"url"`
}

// Media groups optional media attachments for an entry.
type Media struct {
	Video   string     `json:"video,omitempty"`
	Website string     `json:"website,omitempty"`
	PDF     string     `json:"pdf,omitempty"`
	Game    *GameMedia `json:"game,omitempty"`
}

// Links groups optional external links for an entry.
type Links struct {
	LiveDemo string `json:"liveDemo,omitempty"`
	Docs     string `json:"docs,omitempty"`
}

// PortfolioConfig is the manually-authored override document stored as
// .portfolio.json in a repository root. Every field except Name is
// optional; absence means "defer to auto-detection".
type PortfolioConfig struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Status           string   `json:"status,omitempty"`
	DateCompleted    string   `json:"dateCompleted,omitempty"` // YYYY-MM
	Models           []string `json:"models,omitempty"`
	Images           []string `json:"images,omitempty"`
	Thumbnail        string   `json:"thumbnail,omitempty"`
	Media            *Media   `json:"media,omitempty"`
	Links            *Links   `json:"links,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
	Exclude          bool     `json:"exclude,omitempty"`
}

// PortfolioEntry is one finalized portfolio record. It is built fresh
// each run from RepoInfo, an optional override, and detector output,
// and lives only in memory for the duration of formatting.
type PortfolioEntry struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Status           string   `json:"status,omitempty"`
	DateCompleted    string   `json:"dateCompleted,omitempty"`
	Models           []string `json:"models,omitempty"`
	Images           []string `json:"images,omitempty"`
	Thumbnail        string   `json:"thumbnail,omitempty"`
	Media            *Media   `json:"media,omitempty"`
	Links            *Links   `json:"links,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
	GitHub           string   `json:"github"`

	// Enabled is a transient flag for the interactive variant; it is
	// never part of the persisted schema.
	Enabled bool `json:"-"`
}

// EntryList wraps the array of entries for serialization.
type EntryList struct {
	Projects []PortfolioEntry `json:"projects"`
}
