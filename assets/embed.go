// Package assets holds the static files served under /static
package assets

import "embed"

//go:embed css
var FS embed.FS
