package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/park285/weather-assistant-go/internal/handler/shared"
	"github.com/park285/weather-assistant-go/internal/httperror"
)

type bindTarget struct {
	Name string `json:"name" binding:"max=5"`
}

type requiredTarget struct {
	UserText string         `json:"user_text" binding:"required"`
	Weather  map[string]any `json:"weather" binding:"required"`
	Context  *struct {
		Category string `json:"category" binding:"required"`
	} `json:"context"`
}

func decodeError(t *testing.T, body []byte) httperror.ErrorResponse {
	t.Helper()
	var payload httperror.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload
}

func TestBindJSONInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, body := range []string{"", "{not json", `{"name": 5}`} {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		var target bindTarget
		if shared.BindJSON(c, &target) {
			t.Fatalf("expected bind failure for %q", body)
		}
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
		payload := decodeError(t, recorder.Body.Bytes())
		if payload.ErrorCode != string(httperror.ErrorCodeInvalidInput) || payload.Error != shared.MsgInvalidJSON {
			t.Fatalf("unexpected payload for %q: %+v", body, payload)
		}
	}
}

func TestBindJSONValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"too long name"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	if shared.BindJSON(c, &target) {
		t.Fatalf("expected validation failure")
	}
	payload := decodeError(t, recorder.Body.Bytes())
	if recorder.Code != http.StatusBadRequest || payload.ErrorCode != string(httperror.ErrorCodeValidation) {
		t.Fatalf("unexpected response: %d %+v", recorder.Code, payload)
	}
}

func TestBindJSONRequiredIsMissingField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		body        string
		wantMessage string
	}{
		{`{"weather":{"temp":1}}`, "user_text required"},
		{`{"user_text":"","weather":{}}`, "user_text required"},
		{`{"user_text":"hi"}`, "weather required"},
		{`{"user_text":"hi","weather":{},"context":{}}`, "context.category required"},
	}
	for _, tt := range tests {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		c.Request.Header.Set("Content-Type", "application/json")

		var target requiredTarget
		if shared.BindJSON(c, &target) {
			t.Fatalf("expected bind failure for %s", tt.body)
		}
		payload := decodeError(t, recorder.Body.Bytes())
		if recorder.Code != http.StatusBadRequest || payload.ErrorCode != string(httperror.ErrorCodeMissingField) {
			t.Fatalf("unexpected response for %s: %d %+v", tt.body, recorder.Code, payload)
		}
		if payload.Error != tt.wantMessage {
			t.Fatalf("expected %q, got %q", tt.wantMessage, payload.Error)
		}
	}
}

func TestParseCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query       string
		wantPresent bool
		wantErr     bool
	}{
		{"lat=35.68&lon=139.76", true, false},
		{"lat=35.68", false, false},
		{"", false, false},
		{"lat=abc&lon=1", true, true},
		{"lat=91&lon=0", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			coords, present, err := shared.ParseCoordinates(c)
			if present != tt.wantPresent || (err != nil) != tt.wantErr {
				t.Fatalf("unexpected result: present=%v err=%v", present, err)
			}
			if tt.query == "lat=35.68&lon=139.76" && (coords.Lat != 35.68 || coords.Lon != 139.76) {
				t.Fatalf("unexpected coords: %+v", coords)
			}
		})
	}
}
