package httputil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	tests := []struct {
		name string
		key  string
		data []byte
	}{
		{"png bytes", "https://example.com/hero.png", []byte{0x89, 'P', 'N', 'G'}},
		{"jpeg bytes", "https://cdn.example.com/bg.jpg", []byte{0xFF, 0xD8, 0xFF}},
		{"empty body", "https://example.com/empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(tt.key, tt.data); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}

			var got []byte
			ok, err := c.Get(tt.key, &got)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !ok {
				t.Fatal("Get() returned false for cached URL")
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Get() = %v, want %v", got, tt.data)
			}
		})
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var got []byte
	ok, err := c.Get("https://example.com/never-fetched.png", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for a URL that was never cached")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	url := "https://example.com/stale.png"
	if err := c.Set(url, []byte("img")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got []byte
	ok, err := c.Get(url, &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}

	time.Sleep(20 * time.Millisecond)

	ok, err = c.Get(url, &got)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired entry")
	}
}

func TestCacheKeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	url := "https://example.com/a.png"
	if c.keyPath(url) != c.keyPath(url) {
		t.Error("path should be deterministic")
	}
	if c.keyPath(url) == c.keyPath("https://example.com/b.png") {
		t.Error("different URLs should produce different paths")
	}
}

func TestNewCacheDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := filepath.Join(home, ".cache", "posterkit")
	if c.Dir() != want {
		t.Errorf("got Dir = %s, want %s", c.Dir(), want)
	}
	if c.TTL() != time.Hour {
		t.Errorf("got TTL = %v, want 1h", c.TTL())
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestCacheNamespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	t.Run("isolation", func(t *testing.T) {
		images := c.Namespace("image:")
		renders := c.Namespace("render:")
		key := "https://example.com/poster.png"

		if err := images.Set(key, []byte("fetched")); err != nil {
			t.Fatalf("images.Set() failed: %v", err)
		}
		if err := renders.Set(key, []byte("encoded")); err != nil {
			t.Fatalf("renders.Set() failed: %v", err)
		}

		var got []byte
		if ok, err := images.Get(key, &got); !ok || err != nil {
			t.Fatalf("images.Get() = %v, %v; want true, nil", ok, err)
		}
		if string(got) != "fetched" {
			t.Errorf("image namespace returned %q, want %q", got, "fetched")
		}
		if ok, err := renders.Get(key, &got); !ok || err != nil {
			t.Fatalf("renders.Get() = %v, %v; want true, nil", ok, err)
		}
		if string(got) != "encoded" {
			t.Errorf("render namespace returned %q, want %q", got, "encoded")
		}
	})

	t.Run("chained prefixes", func(t *testing.T) {
		images := c.Namespace("image:")
		thumbs := images.Namespace("thumb:")

		if err := thumbs.Set("logo", []byte("small")); err != nil {
			t.Fatalf("Set() failed: %v", err)
		}

		var got []byte
		if ok, err := thumbs.Get("logo", &got); !ok || err != nil || string(got) != "small" {
			t.Errorf("Get() = %v, %v, %q; want true, nil, %q", ok, err, got, "small")
		}

		// The entry must not resolve without the full prefix chain.
		if found, _ := images.Get("logo", &got); found {
			t.Error("entry accessible without full namespace chain")
		}
	})

	t.Run("empty prefix is the parent", func(t *testing.T) {
		ns := c.Namespace("")
		if err := ns.Set("key", []byte("value")); err != nil {
			t.Fatalf("Set() failed: %v", err)
		}

		var got []byte
		if ok, err := c.Get("key", &got); !ok || err != nil || string(got) != "value" {
			t.Error("empty namespace should behave like parent")
		}
	})

	t.Run("keeps dir and ttl", func(t *testing.T) {
		ns := c.Namespace("image:")
		if ns.Dir() != c.Dir() {
			t.Errorf("Dir() = %s, want %s", ns.Dir(), c.Dir())
		}
		if ns.TTL() != c.TTL() {
			t.Errorf("TTL() = %v, want %v", ns.TTL(), c.TTL())
		}
	})
}
