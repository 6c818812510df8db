package static

import _ "embed"

// APIMd contains the embedded API description.
//
//go:embed api.md
var APIMd string
