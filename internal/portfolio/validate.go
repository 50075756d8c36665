package portfolio

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// FieldError is one schema violation, addressed by field path.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in a document, in
// field order, not just the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

var dateCompletedRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

var validStatuses = map[string]bool{
	StatusCompleted:  true,
	StatusInProgress: true,
	StatusArchived:   true,
}

var validGameTypes = map[string]bool{
	GameTypeUnityWebGL: true,
	GameTypeItch:       true,
}

// ParseConfig decodes an override document and validates it. Unknown
// extra fields are tolerated. On any violation the returned config is
// nil and the error list covers every problem found.
func ParseConfig(data []byte) (*PortfolioConfig, ValidationErrors) {
	var cfg PortfolioConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, ValidationErrors{{Field: "config", Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if errs := ValidateConfig(&cfg); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// ValidateConfig checks a decoded override document against the
// recognized schema and reports every field-level violation.
func ValidateConfig(cfg *PortfolioConfig) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required and must be a non-empty string"})
	}
	if cfg.DateCompleted != "" && !dateCompletedRe.MatchString(cfg.DateCompleted) {
		errs = append(errs, FieldError{Field: "dateCompleted", Message: fmt.Sprintf("%q does not match the YYYY-MM format", cfg.DateCompleted)})
	}
	if cfg.Status != "" && !validStatuses[cfg.Status] {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("%q is not one of Completed, In Progress, Archived", cfg.Status)})
	}

	if cfg.Media != nil {
		errs = appendURLError(errs, "media.video", cfg.Media.Video)
		errs = appendURLError(errs, "media.website", cfg.Media.Website)
		if cfg.Media.Game != nil {
			if !validGameTypes[cfg.Media.Game.Type] {
				errs = append(errs, FieldError{Field: "media.game.type", Message: fmt.Sprintf("%q is not one of unity-webgl, itch", cfg.Media.Game.Type)})
			}
			errs = appendURLError(errs, "media.game.url", cfg.Media.Game.URL)
		}
	}
	if cfg.Links != nil {
		errs = appendURLError(errs, "links.liveDemo", cfg.Links.LiveDemo)
		errs = appendURLError(errs, "links.docs", cfg.Links.Docs)
	}

	return errs
}

func appendURLError(errs ValidationErrors, field, value string) ValidationErrors {
	if value == "" {
		return errs
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%q is not a well-formed URL", value)})
	}
	return errs
}
