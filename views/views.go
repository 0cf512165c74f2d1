package views

import "embed"

// FS holds the page templates so the binary runs from any directory.
//
//go:embed *.html
var FS embed.FS
