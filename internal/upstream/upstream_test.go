package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	body, err := Get(context.Background(), NewHTTPClient(5), server.URL, "fetch failed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGetNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, " city not found \n")
	}))
	defer server.Close()

	_, err := Get(context.Background(), NewHTTPClient(5), server.URL, "weather fetch failed")
	var upstreamErr *Error
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if upstreamErr.Status != http.StatusNotFound || upstreamErr.Body != "city not found" {
		t.Fatalf("unexpected error: %+v", upstreamErr)
	}
	if upstreamErr.Error() != "weather fetch failed: status 404" {
		t.Fatalf("unexpected message: %s", upstreamErr.Error())
	}
}

func TestGetTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := Get(context.Background(), NewHTTPClient(1), url, "fetch failed")
	if err == nil {
		t.Fatalf("expected error")
	}
	var upstreamErr *Error
	if errors.As(err, &upstreamErr) {
		t.Fatalf("transport error should not be *Error")
	}
}
