// Package web bundles the embedded templates and static assets for the
// server-rendered pages.
package web

import "embed"

// Templates holds the HTML page templates.
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds the stylesheet and page scripts, served under /static/.
//
//go:embed static
var Static embed.FS
