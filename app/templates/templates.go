// Package templates embeds the page templates so the binary runs without the source tree.
package templates

import "embed"

//go:embed layouts errors auth admin teacher student shared
var FS embed.FS
