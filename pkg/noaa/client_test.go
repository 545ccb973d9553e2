package noaa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testQuery() PredictionQuery {
	return PredictionQuery{
		Station: StPetersburg,
		Date:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local),
	}
}

func TestClientPredictions(t *testing.T) {
	var gotInterval, gotStation string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInterval = r.FormValue("interval")
		gotStation = r.FormValue("station")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[
			{"t":"2025-03-01 00:00","v":"1.003"},
			{"t":"2025-03-01 01:00","v":"1.340"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ClientOptions{BaseURL: ts.URL}, nil)
	preds, err := c.Predictions(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("got %d predictions, want 2", len(preds))
	}
	if preds[1].Height != 1.34 {
		t.Errorf("got height %f, want 1.34", preds[1].Height)
	}
	if gotInterval != "h" {
		t.Errorf("queried interval %q, want h", gotInterval)
	}
	if gotStation != "8726724" {
		t.Errorf("queried station %q, want 8726724", gotStation)
	}
}

func TestClientAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The real API reports this with a 200.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"Wrong station ID"}}`))
	}))
	defer ts.Close()

	c := NewClient(ClientOptions{BaseURL: ts.URL}, nil)
	_, err := c.Predictions(context.Background(), testQuery())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Message != "Wrong station ID" {
		t.Errorf("got message %q", apiErr.Message)
	}
}

func TestClientEmptyPredictions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ClientOptions{BaseURL: ts.URL}, nil)
	_, err := c.Predictions(context.Background(), testQuery())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestClientRetries(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predictions":[{"t":"2025-03-01 00:00","v":"1.003"}]}`))
	}))
	defer ts.Close()

	c := NewClient(ClientOptions{
		BaseURL:       ts.URL,
		RetryCount:    2,
		RetryWaitTime: time.Millisecond,
		RetryMaxWait:  5 * time.Millisecond,
	}, nil)
	preds, err := c.Predictions(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(preds) != 1 {
		t.Errorf("got %d predictions, want 1", len(preds))
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}
