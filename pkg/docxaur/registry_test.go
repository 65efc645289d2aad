package docxaur

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// stubFetcher serves canned payloads and counts fetches per locator.
type stubFetcher struct {
	contentType string
	delay       time.Duration
	calls       int64
	fail        bool
}

func (f *stubFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return nil, "", NewResourceFetchError(locator, "boom", nil)
	}
	ct := f.contentType
	if ct == "" {
		ct = "image/png"
	}
	return []byte("payload:" + locator), ct, nil
}

func TestRegisterIdempotent(t *testing.T) {
	reg := NewImageRegistry(&stubFetcher{})
	ctx := context.Background()

	first, err := reg.Register(ctx, "https://example.com/a.png")
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	second, err := reg.Register(ctx, "https://example.com/a.png")
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	if first != second {
		t.Errorf("repeated registration returned a different record")
	}
	if second.ID != first.ID {
		t.Errorf("repeated registration changed id: %d vs %d", second.ID, first.ID)
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d records, want 1", reg.Len())
	}
}

func TestRegisterAssignsIncreasingIDs(t *testing.T) {
	reg := NewImageRegistry(&stubFetcher{})
	ctx := context.Background()

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		rec, err := reg.Register(ctx, fmt.Sprintf("https://example.com/%d.png", i))
		if err != nil {
			t.Fatalf("Register %d failed: %v", i, err)
		}
		if rec.ID != i+1 {
			t.Errorf("registration %d got id %d, want %d", i, rec.ID, i+1)
		}
		if seen[rec.ID] {
			t.Errorf("id %d assigned twice", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestRegisterRelationshipIDOffset(t *testing.T) {
	reg := NewImageRegistry(&stubFetcher{})
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		rec, err := reg.Register(ctx, fmt.Sprintf("/images/%d.png", i))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		want := fmt.Sprintf("rId%d", rec.ID+3)
		if rec.RelID != want {
			t.Errorf("image %d RelID = %s, want %s", rec.ID, rec.RelID, want)
		}
	}
}

func TestRegisterUnsupportedLocator(t *testing.T) {
	reg := NewImageRegistry(&stubFetcher{})

	for _, locator := range []string{"ftp://example.com/a.png", "relative/path.png", "data:image/png;base64,xx", ""} {
		_, err := reg.Register(context.Background(), locator)
		if err == nil {
			t.Errorf("Register(%q) expected error, got none", locator)
			continue
		}
		if !IsUnsupportedLocatorError(err) {
			t.Errorf("Register(%q) = %v, want UnsupportedLocatorError", locator, err)
		}
	}
}

func TestRegisterFetchFailure(t *testing.T) {
	reg := NewImageRegistry(&stubFetcher{fail: true})

	_, err := reg.Register(context.Background(), "https://example.com/missing.png")
	if err == nil {
		t.Fatal("expected fetch error, got none")
	}
	if !IsResourceFetchError(err) {
		t.Fatalf("got %v, want ResourceFetchError", err)
	}
	if reg.Len() != 0 {
		t.Errorf("failed fetch left %d records in registry", reg.Len())
	}
}

func TestRegisterConcurrentSameLocator(t *testing.T) {
	fetcher := &stubFetcher{delay: 20 * time.Millisecond}
	reg := NewImageRegistry(fetcher)

	const goroutines = 16
	records := make([]*ImageRecord, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records[i], errs[i] = reg.Register(context.Background(), "https://example.com/shared.png")
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d failed: %v", i, errs[i])
		}
		if records[i] != records[0] {
			t.Errorf("goroutine %d got a different record", i)
		}
	}
	if got := atomic.LoadInt64(&fetcher.calls); got != 1 {
		t.Errorf("fetcher called %d times, want exactly 1", got)
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d records, want 1", reg.Len())
	}
}

func TestNetFetcherHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("pngbytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher := NewNetFetcher(5*time.Second, ".")

	data, ct, err := fetcher.Fetch(context.Background(), srv.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(data) != "pngbytes" || ct != "image/png" {
		t.Errorf("Fetch = (%q, %q), want (pngbytes, image/png)", data, ct)
	}

	_, _, err = fetcher.Fetch(context.Background(), srv.URL+"/gone.png")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !IsResourceFetchError(err) {
		t.Errorf("got %v, want ResourceFetchError", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		expected    string
	}{
		{"image/png", "png"},
		{"image/jpeg", "jpg"},
		{"image/gif", "gif"},
		{"image/bmp", "bmp"},
		{"image/webp", "webp"},
		{"image/png; charset=binary", "png"},
		{"application/octet-stream", "png"},
		{"", "png"},
	}

	for _, tt := range tests {
		if got := extensionFor(tt.contentType); got != tt.expected {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.contentType, got, tt.expected)
		}
	}
}
