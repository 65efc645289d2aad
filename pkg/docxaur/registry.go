package docxaur

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// reservedRelationships is the number of fixed relationship ids occupied by
// the non-resource parts (styles, fontTable, settings). Image N maps to
// relationship id N+reservedRelationships.
const reservedRelationships = 3

// defaultImageExtension is used when the fetched content type does not
// identify a known image format.
const defaultImageExtension = "png"

// ImageRecord is the immutable registration result for one distinct locator.
type ImageRecord struct {
	Locator   string
	ID        int    // 1-based, strictly increasing in registration order
	Extension string // media file extension, no dot
	RelID     string // relationship id referenced from body markup
	Data      []byte
}

// MediaPath returns the package entry name of the image payload.
func (r *ImageRecord) MediaPath() string {
	return fmt.Sprintf("word/media/image%d.%s", r.ID, r.Extension)
}

// Fetcher resolves an image locator to its byte payload and content type.
// The resolved content type may be empty when unknown.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, string, error)
}

// NetFetcher fetches http(s) URLs with an HTTP client and root-relative
// paths from a base directory.
type NetFetcher struct {
	Client  *http.Client
	BaseDir string
}

// NewNetFetcher creates a fetcher with the given timeout and base directory.
func NewNetFetcher(timeout time.Duration, baseDir string) *NetFetcher {
	return &NetFetcher{
		Client:  &http.Client{Timeout: timeout},
		BaseDir: baseDir,
	}
}

// Fetch implements the Fetcher interface.
func (f *NetFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	if strings.HasPrefix(locator, "/") {
		data, err := os.ReadFile(filepath.Join(f.BaseDir, filepath.FromSlash(locator[1:])))
		if err != nil {
			return nil, "", NewResourceFetchError(locator, "", err)
		}
		return data, http.DetectContentType(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, "", NewResourceFetchError(locator, "", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", NewResourceFetchError(locator, "", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", NewResourceFetchError(locator, resp.Status, nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", NewResourceFetchError(locator, "", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// ImageRegistry maps image locators to stable numeric ids and fetched
// payloads. One instance belongs to one Document; the map only grows.
//
// Concurrent registrations of the same unseen locator are collapsed into a
// single fetch via singleflight, so idempotence holds even under the
// fan-out performed by table builds.
type ImageRegistry struct {
	fetcher Fetcher

	mu      sync.Mutex
	records map[string]*ImageRecord
	order   []string
	nextID  int

	group singleflight.Group
}

// NewImageRegistry creates an empty registry backed by the given fetcher.
func NewImageRegistry(fetcher Fetcher) *ImageRegistry {
	return &ImageRegistry{
		fetcher: fetcher,
		records: make(map[string]*ImageRecord),
		nextID:  1,
	}
}

// Register resolves a locator to its record, fetching and allocating an id
// on first sight. Repeated and concurrent calls for the same locator return
// the same record.
func (r *ImageRegistry) Register(ctx context.Context, locator string) (*ImageRecord, error) {
	if !supportedLocator(locator) {
		return nil, NewUnsupportedLocatorError(locator)
	}

	v, err, _ := r.group.Do(locator, func() (interface{}, error) {
		r.mu.Lock()
		if rec, ok := r.records[locator]; ok {
			r.mu.Unlock()
			return rec, nil
		}
		r.mu.Unlock()

		data, contentType, err := r.fetcher.Fetch(ctx, locator)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		rec := &ImageRecord{
			Locator:   locator,
			ID:        r.nextID,
			Extension: extensionFor(contentType),
			Data:      data,
		}
		rec.RelID = fmt.Sprintf("rId%d", rec.ID+reservedRelationships)
		r.nextID++
		r.records[locator] = rec
		r.order = append(r.order, locator)
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ImageRecord), nil
}

// Lookup returns the record for an already registered locator.
func (r *ImageRegistry) Lookup(locator string) (*ImageRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[locator]
	return rec, ok
}

// Records returns all registrations in id order.
func (r *ImageRegistry) Records() []*ImageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ImageRecord, 0, len(r.order))
	for _, loc := range r.order {
		out = append(out, r.records[loc])
	}
	return out
}

// Len returns the number of registered images.
func (r *ImageRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// supportedLocator accepts http URLs, https URLs and root-relative paths.
func supportedLocator(locator string) bool {
	return strings.HasPrefix(locator, "http://") ||
		strings.HasPrefix(locator, "https://") ||
		strings.HasPrefix(locator, "/")
}

// extensionFor derives the media file extension from a content type.
func extensionFor(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	switch strings.TrimSpace(contentType) {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	case "image/webp":
		return "webp"
	default:
		return defaultImageExtension
	}
}
