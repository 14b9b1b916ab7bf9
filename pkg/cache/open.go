package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Backend names accepted by [Open] besides URLs.
const (
	BackendFile = "file"
	BackendNone = "none"
)

// Open returns the cache described by rawURL:
//
//	""  or "file"              FileCache in dir
//	"file:///path"             FileCache in /path
//	"none"                     NullCache
//	"redis://host:6379/0"      RedisCache (also rediss://)
//	"mongodb://host/db?..."    MongoCache, database from the path (also mongodb+srv://)
func Open(ctx context.Context, rawURL, dir string) (Cache, error) {
	switch rawURL {
	case "", BackendFile:
		return openFile(dir)
	case BackendNone, "off", "null":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	switch u.Scheme {
	case "file":
		return openFile(u.Path)
	case "redis", "rediss":
		c, err := NewRedisCache(ctx, RedisConfig{URL: rawURL})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mongodb", "mongodb+srv":
		c, err := NewMongoCache(ctx, mongoConfigFromURL(u, rawURL))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// mongoConfigFromURL takes the database from the URL path and the collection
// from the "collection" query parameter, which is removed from the URI handed
// to the driver.
func mongoConfigFromURL(u *url.URL, rawURL string) MongoConfig {
	cfg := MongoConfig{URI: rawURL, Database: strings.Trim(u.Path, "/")}
	q := u.Query()
	if coll := q.Get("collection"); coll != "" {
		cfg.Collection = coll
		q.Del("collection")
		stripped := *u
		stripped.RawQuery = q.Encode()
		cfg.URI = stripped.String()
	}
	return cfg
}

// Describe returns a log-safe description of a cache URL, without credentials.
func Describe(rawURL string) string {
	switch rawURL {
	case "", BackendFile:
		return BackendFile
	case BackendNone, "off", "null":
		return BackendNone
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
