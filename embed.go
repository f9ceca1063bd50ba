// Package metaview holds the embedded web resources (HTML templates,
// static files) served by the UI when no -base-dir override is given.
package metaview

import "embed"

//go:embed templates static
var Files embed.FS
