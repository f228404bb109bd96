// Package web bundles the view templates and static assets into the binaries.
package web

import "embed"

//go:embed templates static
var FS embed.FS
