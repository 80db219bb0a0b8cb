package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"owprofile-backend/internal/components/assert"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Dump is an API that writes every page it fetches into a directory, which is
// how test fixtures get refreshed when the upstream markup changes.
type Dump struct {
	inner     API
	directory string
	counter   *atomic.Uint64
}

// NewDump creates directory if needed, existing files in it are overwritten.
func NewDump(inner API, directory string) (Dump, error) {
	assert.NotNil(inner)
	assert.NotEmptyStr(directory)

	err := os.MkdirAll(directory, 0755)
	if err != nil {
		return Dump{}, fmt.Errorf("create dump directory: %w", err)
	}
	return Dump{inner: inner, directory: directory, counter: &atomic.Uint64{}}, nil
}

// dumpName turns a url into a flat file name, ex.
// "https://overwatch.blizzard.com/en-us/career/Player-1234/" -> "001_overwatch.blizzard.com_en-us_career_Player-1234.html"
func dumpName(n uint64, rawUrl string) string {
	name := rawUrl
	parsed, err := url.Parse(rawUrl)
	if err == nil {
		name = parsed.Host + parsed.Path
	}
	name = strings.Trim(name, "/")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '?', '*', '"', '<', '>', '|', '#', ' ':
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%03d_%s.html", n, name)
}

func (d Dump) Get(ctx context.Context, url string) (string, error) {
	body, err := d.inner.Get(ctx, url)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.directory, dumpName(d.counter.Add(1), url))
	err = os.WriteFile(path, []byte(body), 0644)
	if err != nil {
		slog.Warn("failed to dump page", "url", url, "err", err)
	}
	return body, nil
}
