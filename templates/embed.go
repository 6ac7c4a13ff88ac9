// Package templates holds the html views rendered by the router
package templates

import "embed"

//go:embed *.html
var FS embed.FS
