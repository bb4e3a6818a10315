package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"chainvoice/pkg/response"
)

var testSecret = []byte("test_secret")

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAuthHandler(testSecret).RegisterRoutes(router.Group(""))
	return router
}

func TestCreateSession(t *testing.T) {
	router := newAuthRouter()

	body := `{"address":"0x742D35Cc6634C0532925a3b844Bc9e7595f0bEb3"}`
	req := httptest.NewRequest("POST", "/api/auth/session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", envelope.Data)
	}

	// Issued for the normalized, lower-cased address.
	if data["address"] != "0x742d35cc6634c0532925a3b844bc9e7595f0beb3" {
		t.Fatalf("address = %v", data["address"])
	}

	tokenString, _ := data["token"].(string)
	if tokenString == "" {
		t.Fatalf("missing token in response")
	}
	parsed, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "0x742d35cc6634c0532925a3b844bc9e7595f0beb3" {
		t.Fatalf("sub = %v", claims["sub"])
	}
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	router := newAuthRouter()

	cases := []struct {
		name string
		body string
	}{
		{name: "missing address", body: `{}`},
		{name: "malformed json", body: `{`},
		{name: "invalid address", body: `{"address":"not-an-address"}`},
		{name: "short hex", body: `{"address":"0x1234"}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/session", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
		})
	}
}
