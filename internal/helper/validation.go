package helper

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateSourceURL checks that feedURL is an absolute http(s) URL.
func ValidateSourceURL(feedURL string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(feedURL))
	if err != nil {
		return fmt.Errorf("invalid source URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("source URL %q has no host", feedURL)
	}
	return nil
}
