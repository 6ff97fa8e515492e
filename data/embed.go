// Package data embeds the default Hebrew lexicon shipped with the binary.
package data

import "embed"

// BundleDir is the directory inside Bundle that holds manifest.yaml.
const BundleDir = "default"

//go:embed default
var Bundle embed.FS
