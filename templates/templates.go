// Package templates embeds the HTML templates so the rendered views do not
// depend on the working directory of the process.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
