package render

import _ "embed"

// Default assets embedded into standalone HTML documents.

//go:embed assets/default.css
var DefaultCSS string

//go:embed assets/default.js
var DefaultJS string
