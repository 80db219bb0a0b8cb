package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpName(t *testing.T) {
	testCases := []struct {
		n        uint64
		url      string
		expected string
	}{
		{
			n:        1,
			url:      "https://overwatch.blizzard.com/en-us/career/Player-1234/",
			expected: "001_overwatch.blizzard.com_en-us_career_Player-1234.html",
		},
		{
			n:        12,
			url:      "https://www.overbuff.com/players/Player-1234",
			expected: "012_www.overbuff.com_players_Player-1234.html",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, dumpName(test.n, test.url), test.url)
	}
}

func TestDump(t *testing.T) {
	static := NewStatic(map[string]string{
		"https://example.com/a": "page a",
	})
	static.Fail("https://example.com/b", errors.New("down"))

	dir := filepath.Join(t.TempDir(), "pages")
	dump, err := NewDump(static, dir)
	require.NoError(t, err)

	body, err := dump.Get(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	require.Equal(t, "page a", body)

	_, err = dump.Get(context.Background(), "https://example.com/b")
	require.Error(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "001_example.com_a.html"))
	require.NoError(t, err)
	require.Equal(t, "page a", string(written))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
