package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/park285/weather-assistant-go/internal/gemini"
	"github.com/park285/weather-assistant-go/internal/upstream"
	"github.com/park285/weather-assistant-go/internal/weather"
)

func TestFromErrorMapping(t *testing.T) {
	apiErr := FromError(fmt.Errorf("translate: %w", gemini.ErrMissingAPIKey))
	if apiErr == nil || apiErr.Code != ErrorCodeConfig || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected config error, got %+v", apiErr)
	}
	if apiErr.Message != "GEMINI_API_KEY missing" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}

	apiErr = FromError(weather.ErrMissingAPIKey)
	if apiErr == nil || apiErr.Code != ErrorCodeConfig || apiErr.Message != "OPENWEATHER_KEY not configured" {
		t.Fatalf("expected weather config error, got %+v", apiErr)
	}

	apiErr = FromError(context.DeadlineExceeded)
	if apiErr == nil || apiErr.Code != ErrorCodeUpstreamTimeout {
		t.Fatalf("expected timeout error")
	}
}

func TestFromErrorUpstream(t *testing.T) {
	err := fmt.Errorf("current: %w", &upstream.Error{Message: "weather fetch failed", Status: 404, Body: "city not found"})
	status, payload := Response(err, "req-2")
	if status != http.StatusNotFound {
		t.Fatalf("expected upstream status, got %d", status)
	}
	if payload.Error != "weather fetch failed" || payload.ErrorCode != string(ErrorCodeUpstream) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Details["body"] != "city not found" {
		t.Fatalf("unexpected details: %+v", payload.Details)
	}
}

func TestNewUpstreamErrorClampsStatus(t *testing.T) {
	if err := NewUpstreamError("x", 302, ""); err.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 for non-error status, got %d", err.Status)
	}
}

func TestResponseIncludesRequestID(t *testing.T) {
	status, payload := Response(NewMissingField("user_text"), "req-1")
	if status != 400 {
		t.Fatalf("unexpected status: %d", status)
	}
	if payload.RequestID == nil || *payload.RequestID != "req-1" {
		t.Fatalf("expected request id")
	}
	if payload.Error != "user_text required" {
		t.Fatalf("unexpected error message: %s", payload.Error)
	}
}

func TestNewMissingField(t *testing.T) {
	err := NewMissingField("weather.temp")
	if err.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 status, got: %d", err.Status)
	}
	if err.Code != ErrorCodeMissingField {
		t.Fatalf("expected missing field error code")
	}
	if err.Details["field"] != "weather.temp" {
		t.Fatalf("expected field detail")
	}
}

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput("invalid JSON body")
	if err.Status != http.StatusBadRequest || err.Code != ErrorCodeInvalidInput {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(errors.New("field validation failed"))
	if err.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 status, got: %d", err.Status)
	}
	fields, ok := err.Details["errors"].([]FieldError)
	if !ok || len(fields) != 1 || fields[0].Field != "body" {
		t.Fatalf("unexpected details: %+v", err.Details)
	}
}

func TestFromErrorNil(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}
}

func TestFromErrorGeneric(t *testing.T) {
	apiErr := FromError(errors.New("some generic error"))
	if apiErr == nil || apiErr.Status != http.StatusInternalServerError || apiErr.Message != "some generic error" {
		t.Fatalf("expected 500 with error string, got %+v", apiErr)
	}
}

func TestResponseWithEmptyRequestID(t *testing.T) {
	status, payload := Response(NewInternalError("test"), "")
	if status != 500 {
		t.Fatalf("unexpected status: %d", status)
	}
	if payload.RequestID != nil {
		t.Fatalf("expected nil request id for empty string")
	}
}
