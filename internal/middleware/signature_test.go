package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"object":"whatsapp_business_account"}`)

	if !VerifySignature(secret, body, sign(secret, body)) {
		t.Error("valid signature rejected")
	}
	if VerifySignature(secret, body, "sha256=deadbeef") {
		t.Error("invalid signature accepted")
	}
	if VerifySignature(secret, []byte("tampered"), sign(secret, body)) {
		t.Error("signature accepted for a different body")
	}
	if VerifySignature("wrong-secret", body, sign(secret, body)) {
		t.Error("signature accepted with a different secret")
	}
}

func newSignedApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook", ValidateSignature(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	return app
}

func TestValidateSignatureMiddleware(t *testing.T) {
	t.Setenv("APP_SECRET", "test-secret")
	app := newSignedApp()
	body := `{"object":"whatsapp_business_account","entry":[]}`

	// missing header
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("missing signature: status %d, want 403", resp.StatusCode)
	}

	// wrong signature
	req = httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature-256", "sha256=0000")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("bad signature: status %d, want 403", resp.StatusCode)
	}

	// valid signature
	req = httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature-256", sign("test-secret", []byte(body)))
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid signature: status %d, want 200", resp.StatusCode)
	}
}

func TestValidateSignatureSkippedWithoutSecret(t *testing.T) {
	t.Setenv("APP_SECRET", "")
	app := newSignedApp()

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("without APP_SECRET requests should pass, got %d", resp.StatusCode)
	}
}
