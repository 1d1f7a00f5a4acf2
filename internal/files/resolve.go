// Package files turns stored relative paths into absolute, externally
// fetchable URLs for icons, files and application packages.
package files

import (
	"net/url"
	"strings"
)

// IsAbsoluteURL reports whether s already carries an http or https scheme.
func IsAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ResolveURL builds the absolute download URL for a server-relative path:
// {base}/files/{customerDir}/{relPath}, url-encoding each path segment
// independently. An already-absolute relPath is returned verbatim, which
// keeps the resolver idempotent and prevents double encoding.
func ResolveURL(baseURL, customerDir, relPath string) string {
	if relPath == "" {
		return ""
	}

	if IsAbsoluteURL(relPath) {
		return relPath
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/files")

	if customerDir != "" {
		b.WriteString("/")
		b.WriteString(url.PathEscape(customerDir))
	}

	for _, segment := range strings.Split(strings.TrimLeft(relPath, "/"), "/") {
		b.WriteString("/")
		b.WriteString(url.PathEscape(segment))
	}

	return b.String()
}

// Resolve picks the effective URL of a stored record: an explicit external
// URL wins verbatim, otherwise the relative path is resolved via ResolveURL.
func Resolve(externalURL, relPath, baseURL, customerDir string) string {
	if externalURL != "" {
		return externalURL
	}

	return ResolveURL(baseURL, customerDir, relPath)
}
