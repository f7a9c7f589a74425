package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

//go:embed assets/scripts.js
var assetsFS embed.FS

// ScriptPath is the path the browser script is served under.
const ScriptPath = "/static/scripts.js"

// TemplatesFS exposes the page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

// ScriptFS exposes the browser script rooted at the assets directory.
func ScriptFS() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return assetsFS
	}
	return sub
}

// Script returns the browser script source.
func Script() ([]byte, error) {
	return fs.ReadFile(ScriptFS(), "scripts.js")
}
