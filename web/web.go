// Package web holds the embedded site assets.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS
