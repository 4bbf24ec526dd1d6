package daemon

import _ "embed"

// indexPage is the single-page browser front-end served at /.
//
//go:embed index.html
var indexPage []byte
