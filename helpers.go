package cmsblog

import "strings"

// safeSlug reports whether slug can be used as a single directory name in
// the static export.
func safeSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`+"\x00")
}
