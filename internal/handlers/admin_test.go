package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/percapital/faqbot-backend/internal/models"
)

func TestGetStats(t *testing.T) {
	app, _, store := newTestApp(t)

	_ = store.SaveSession(&models.Session{PhoneNumber: "1", State: models.StateMainMenu, LastInteraction: time.Now()})
	_ = store.AddRating(&models.Rating{UserPhone: "1", Label: "Excelente", RatedAt: time.Now()})
	_ = store.AddRating(&models.Rating{UserPhone: "2", Label: "Excelente", RatedAt: time.Now()})
	_ = store.AddRating(&models.Rating{UserPhone: "3", Label: "Bien", RatedAt: time.Now()})

	resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var out struct {
		ActiveSessions  int            `json:"active_sessions"`
		TotalRatings    int            `json:"total_ratings"`
		RatingBreakdown map[string]int `json:"rating_breakdown"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if out.ActiveSessions != 1 || out.TotalRatings != 3 {
		t.Errorf("counts wrong: %+v", out)
	}
	if out.RatingBreakdown["Excelente"] != 2 || out.RatingBreakdown["Bien"] != 1 {
		t.Errorf("breakdown wrong: %+v", out.RatingBreakdown)
	}
}

func TestSessionEndpoints(t *testing.T) {
	app, _, store := newTestApp(t)

	_ = store.SaveSession(&models.Session{
		PhoneNumber:     "584121234567",
		State:           models.StateQuestionsMenu,
		Category:        "RIESGOS",
		LastInteraction: time.Now(),
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/sessions/584121234567", nil))
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out["exists"] != true || out["state"] != models.StateQuestionsMenu {
		t.Errorf("session lookup wrong: %v", out)
	}

	// unknown user reads as a fresh conversation, not an error
	resp, _ = app.Test(httptest.NewRequest("GET", "/sessions/000", nil))
	out = nil
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out["exists"] != false || out["state"] != models.StateNew {
		t.Errorf("missing session lookup wrong: %v", out)
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/sessions/584121234567", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("delete: status %d", resp.StatusCode)
	}
	if _, err := store.GetSession("584121234567"); err == nil {
		t.Error("session still present after delete")
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/sessions/584121234567", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("double delete: status %d, want 404", resp.StatusCode)
	}
}

func TestClearAllSessions(t *testing.T) {
	app, _, store := newTestApp(t)

	for _, phone := range []string{"1", "2"} {
		_ = store.SaveSession(&models.Session{PhoneNumber: phone, State: models.StateMainMenu, LastInteraction: time.Now()})
	}

	resp, _ := app.Test(httptest.NewRequest("DELETE", "/sessions", nil))
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out["cleared"].(float64) != 2 {
		t.Errorf("cleared = %v, want 2", out["cleared"])
	}

	count, _ := store.CountSessions()
	if count != 0 {
		t.Errorf("%d sessions remain", count)
	}
}

func TestSendMessageValidation(t *testing.T) {
	app, sender, _ := newTestApp(t)

	cases := []struct {
		body string
		want int
	}{
		{`{"to": "", "message": "hola"}`, fiber.StatusBadRequest},
		{`{"to": "584121234567", "message": ""}`, fiber.StatusBadRequest},
		{`{"to": "584121234567", "message": "hola", "type": "image"}`, fiber.StatusBadRequest},
		{`{"to": "584121234567", "message": "hola"}`, fiber.StatusOK},
		{`{"to": "584121234567", "message": "hola", "type": "text"}`, fiber.StatusOK},
	}

	for i, c := range cases {
		req := httptest.NewRequest("POST", "/send-message", strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if resp.StatusCode != c.want {
			t.Errorf("case %d: status %d, want %d", i, resp.StatusCode, c.want)
		}
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if sender.texts != 2 {
		t.Errorf("sent %d texts, want 2", sender.texts)
	}
}
