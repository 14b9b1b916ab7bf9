package cache

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	fgerrors "github.com/matzehuels/flowergraph/pkg/errors"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil || n != 3 {
		t.Errorf("Clear = %d, %v, want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}

	missing, _ := NewFileCache(filepath.Join(t.TempDir(), "x"))
	if n, err := missing.Clear(ctx); n != 0 || err != nil {
		t.Errorf("Clear on empty dir = %d, %v", n, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := Open(ctx, "", dir)
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	if fc, ok := c.(*FileCache); !ok || fc.Dir() != dir {
		t.Errorf("Open(\"\") = %T", c)
	}

	c, err = Open(ctx, "none", dir)
	if _, ok := c.(*NullCache); err != nil || !ok {
		t.Errorf("Open(none) = %T, %v", c, err)
	}

	other := filepath.Join(dir, "other")
	c, err = Open(ctx, "file://"+other, dir)
	if fc, ok := c.(*FileCache); err != nil || !ok || fc.Dir() != other {
		t.Errorf("Open(file://) = %T, %v", c, err)
	}

	if _, err := Open(ctx, "memcached://localhost", dir); !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Open(memcached) error = %v", err)
	}
}

func TestMongoConfigFromURL(t *testing.T) {
	raw := "mongodb://user:pw@localhost:27017/graphs?collection=artifacts&retryWrites=true"
	u, _ := url.Parse(raw)
	cfg := mongoConfigFromURL(u, raw)

	if cfg.Database != "graphs" || cfg.Collection != "artifacts" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.URI != "mongodb://user:pw@localhost:27017/graphs?retryWrites=true" {
		t.Errorf("URI = %s", cfg.URI)
	}
}

func TestDescribe(t *testing.T) {
	tests := map[string]string{
		"":                                 "file",
		"off":                              "none",
		"redis://:secret@cache:6379/1":     "redis://cache:6379/1",
		"mongodb://u:p@db/graphs?tls=true": "mongodb://db/graphs",
	}
	for in, want := range tests {
		if got := Describe(in); got != want {
			t.Errorf("Describe(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassifyRedis(t *testing.T) {
	if classifyRedis(nil) != nil {
		t.Error("nil should stay nil")
	}
	if err := classifyRedis(context.DeadlineExceeded); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("deadline should be retryable network error: %v", err)
	}
	if err := classifyRedis(errors.New("WRONGTYPE")); IsRetryable(err) {
		t.Error("server errors should not be retried")
	}
}

func TestUnreachableCodes(t *testing.T) {
	tests := []struct {
		name    string
		timeout bool
		code    fgerrors.Code
	}{
		{"connection refused", false, fgerrors.ErrCodeNetwork},
		{"deadline", true, fgerrors.ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := unreachable("redis", tt.timeout, errors.New("dial tcp"))
			if !fgerrors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q", fgerrors.GetCode(err), tt.code)
			}
			if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
				t.Errorf("err = %v, want retryable ErrNetwork", err)
			}
		})
	}

	if err := classifyRedis(context.DeadlineExceeded); !fgerrors.Is(err, fgerrors.ErrCodeTimeout) {
		t.Errorf("classifyRedis(deadline) code = %q, want TIMEOUT", fgerrors.GetCode(err))
	}
}
