package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"gitfolio/internal/portfolio"
)

func testRouter(entries []portfolio.PortfolioEntry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(entries)
	router := gin.New()
	router.GET("/api/projects", h.ListProjects)
	router.POST("/api/projects/:name/toggle", h.ToggleProject)
	router.GET("/api/export", h.Export)
	return router
}

func testEntries() []portfolio.PortfolioEntry {
	return []portfolio.PortfolioEntry{
		{Name: "alpha", GitHub: "https://github.com/me/alpha", Enabled: true},
		{Name: "beta", GitHub: "https://github.com/me/beta", Enabled: true},
	}
}

func TestListProjects_CarriesEnabledFlag(t *testing.T) {
	router := testRouter(testEntries())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Projects []struct {
			Name    string `json:"name"`
			Enabled bool   `json:"enabled"`
		} `json:"projects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if len(body.Projects) != 2 || !body.Projects[0].Enabled {
		t.Errorf("body = %+v", body)
	}
}

func TestToggleProject(t *testing.T) {
	router := testRouter(testEntries())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/beta/toggle", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"enabled":false`) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/projects/nope/toggle", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown project status = %d", w.Code)
	}
}

func TestExport_ReflectsToggles(t *testing.T) {
	router := testRouter(testEntries())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/beta/toggle", nil)
	router.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/export?format=json", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list portfolio.EntryList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(list.Projects) != 1 || list.Projects[0].Name != "alpha" {
		t.Errorf("export = %+v, want toggled-off beta filtered", list.Projects)
	}
	if strings.Contains(w.Body.String(), "enabled") {
		t.Error("export must not carry the transient enabled flag")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	router := testRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/export?format=xml", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}
