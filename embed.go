package cmsblog

import "embed"

// EmbeddedAssets contains static assets shipped with the site: styles.css.
// They are served under /public/ and copied there by Build.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
