// Package blueprint provides the embedded level blueprints: generator
// definitions for single levels and complexes that stack them into
// multi-level dungeons.
package blueprint

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
