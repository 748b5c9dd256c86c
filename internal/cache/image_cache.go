package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/empdesk/empdesk-console/pkg/metrics"
)

const (
	imageCacheName   = "uploads"
	cacheCheckPeriod = 60 * time.Second
)

// UploadFetcher retrieves a stored image by file name.
type UploadFetcher interface {
	FetchUpload(ctx context.Context, name string) ([]byte, string, error)
}

type cachedImage struct {
	data        []byte
	contentType string
}

// ImageCache keeps recently fetched upload bytes so re-rendering the list
// doesn't re-download every row's image. Entries expire after the configured
// TTL; the browser build gets this behavior from the HTTP cache for free.
type ImageCache struct {
	cache  *gocache.Cache
	source UploadFetcher
}

// NewImageCache creates an image cache with the given TTL in seconds.
func NewImageCache(source UploadFetcher, ttlSeconds int) *ImageCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ImageCache{
		cache:  gocache.New(ttl, cacheCheckPeriod),
		source: source,
	}
}

// Get returns the image bytes and content type for an upload name, fetching
// and caching on miss.
func (c *ImageCache) Get(ctx context.Context, name string) ([]byte, string, error) {
	if entry, found := c.cache.Get(name); found {
		metrics.RecordCacheHit(imageCacheName)
		img := entry.(cachedImage)
		return img.data, img.contentType, nil
	}
	metrics.RecordCacheMiss(imageCacheName)

	data, contentType, err := c.source.FetchUpload(ctx, name)
	if err != nil {
		return nil, "", err
	}
	c.cache.SetDefault(name, cachedImage{data: data, contentType: contentType})
	return data, contentType, nil
}

// Invalidate drops one entry, used after an employee's image is replaced.
func (c *ImageCache) Invalidate(name string) {
	c.cache.Delete(name)
}
