package web

import "embed"

// Content holds the embedded web map page.
//
//go:embed map.html
var Content embed.FS
