package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "selene-test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	app := fiber.New()
	handler := NewHandler(database, "test-secret-key", time.UTC)
	RegisterRoutes(app, handler)
	return app, database
}

// registerOwner creates the owner account and returns the auth cookie
// from the registration response.
func registerOwner(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	response := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "",
		map[string]any{"email": email, "password": password})
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register expected status 201, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("register response did not set the auth cookie")
	return ""
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, authCookie string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(body), err)
	}
}
