// Package assets holds static files shipped inside the binary.
package assets

import _ "embed"

// ExportCSS is the print stylesheet wrapped around HTML exports.
//
//go:embed export.css
var ExportCSS string
