package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestRunServesAndReplaces(t *testing.T) {
	s, err := Run("127.0.0.1:0", []byte("v1"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	defer s.Shutdown(context.Background())

	url := "http://" + s.Addr() + "/"

	body := get(t, url)
	if body != "v1" {
		t.Fatalf("body = %q, want v1", body)
	}

	s.Replace([]byte("v2"))
	body = get(t, url)
	if body != "v2" {
		t.Fatalf("body after Replace = %q, want v2", body)
	}
}

func get(t *testing.T, url string) string {
	t.Helper()
	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}
