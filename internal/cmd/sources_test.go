package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"rssmerge/domain"
)

func TestParseSources(t *testing.T) {
	in := `
# blogs
https://ro-che.info/articles/rss.xml
  https://example.wordpress.com/feed/

not a url
ftp://files.example/rss
https://ro-che.info/articles/rss.xml
`
	got, err := parseSources(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []domain.Source{
		"https://ro-che.info/articles/rss.xml",
		"https://example.wordpress.com/feed/",
	}, got)
}

func TestLoadSources(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "sources.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing yet\n"), 0o644))
	got, err := LoadSources(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServeExitCodes(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"no sources file", []string{"rssmerge", "serve"}, exitUsage},
		{"too many args", []string{"rssmerge", "serve", "a", "b"}, exitUsage},
		{"unreadable file", []string{"rssmerge", "serve", filepath.Join(t.TempDir(), "nope.txt")}, exitSourcesFile},
		{"empty list", []string{"rssmerge", "serve", empty}, exitNoSources},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := App()
			app.ExitErrHandler = func(*cli.Context, error) {}
			err := app.Run(tc.args)
			var coder cli.ExitCoder
			require.ErrorAs(t, err, &coder)
			assert.Equal(t, tc.code, coder.ExitCode())
		})
	}
}
