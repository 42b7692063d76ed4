// Package web embeds the server-rendered templates and static assets.
package web

import "embed"

// Templates holds layouts, partials and pages.
//
//go:embed templates/*/*.html
var Templates embed.FS

// Static holds CSS, scripts and images served under /static.
//
//go:embed static
var Static embed.FS
