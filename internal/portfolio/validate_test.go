package portfolio

import (
	"strings"
	"testing"
)

func TestParseConfig_Valid(t *testing.T) {
	data := `{
		"name": "Robot Arm",
		"dateCompleted": "2024-03",
		"status": "Completed",
		"media": {"video": "https://youtu.be/x", "game": {"type": "itch", "url": "https://itch.io/x"}},
		"links": {"liveDemo": "https://example.com/demo"},
		"someFutureField": 42
	}`

	cfg, errs := ParseConfig([]byte(data))
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if cfg.Name != "Robot Arm" || cfg.DateCompleted != "2024-03" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseConfig_InvalidJSON(t *testing.T) {
	cfg, errs := ParseConfig([]byte("{broken"))
	if cfg != nil {
		t.Error("expected nil config")
	}
	if len(errs) != 1 || errs[0].Field != "config" {
		t.Errorf("errors = %v", errs)
	}
}

func TestValidateConfig_DateSeparator(t *testing.T) {
	cfg := &PortfolioConfig{Name: "X", DateCompleted: "2024/03"}

	errs := ValidateConfig(cfg)

	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Field != "dateCompleted" {
		t.Errorf("field = %q, want dateCompleted", errs[0].Field)
	}
	if !strings.Contains(errs[0].Message, "YYYY-MM") {
		t.Errorf("message %q should reference the format requirement", errs[0].Message)
	}
}

func TestValidateConfig_AllViolationsReported(t *testing.T) {
	cfg := &PortfolioConfig{
		Name:          "",
		DateCompleted: "March 2024",
		Status:        "Done",
		Media: &Media{
			Video: "not a url",
			Game:  &GameMedia{Type: "flash", URL: "also bad"},
		},
		Links: &Links{Docs: "://nope"},
	}

	errs := ValidateConfig(cfg)

	wantFields := []string{"name", "dateCompleted", "status", "media.video", "media.game.type", "media.game.url", "links.docs"}
	if len(errs) != len(wantFields) {
		t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(wantFields))
	}
	for i, f := range wantFields {
		if errs[i].Field != f {
			t.Errorf("error %d field = %q, want %q", i, errs[i].Field, f)
		}
	}
}

func TestValidateConfig_DateTable(t *testing.T) {
	cases := []struct {
		date string
		ok   bool
	}{
		{"2024-03", true},
		{"1999-12", true},
		{"2024-3", false},
		{"2024/03", false},
		{"2024-033", false},
		{"24-03", false},
	}
	for _, tc := range cases {
		errs := ValidateConfig(&PortfolioConfig{Name: "X", DateCompleted: tc.date})
		if ok := len(errs) == 0; ok != tc.ok {
			t.Errorf("date %q: valid = %v, want %v (%v)", tc.date, ok, tc.ok, errs)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "required"},
		{Field: "status", Message: "bad"},
	}
	got := errs.Error()
	if got != "name: required; status: bad" {
		t.Errorf("Error() = %q", got)
	}
}
