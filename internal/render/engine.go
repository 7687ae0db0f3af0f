// Package render substitutes context variables into template names and
// file contents.
package render

// Vars maps variable names to values. String values are exposed both as
// zero-argument template functions ({{project_name}}) and as map fields
// ({{.project_name}}); other values are reachable through the map only.
type Vars map[string]any

// Engine renders template text with a set of variables.
type Engine interface {
	// RenderText applies vars to text. name identifies the source in errors.
	RenderText(name, text string, vars Vars) (string, error)

	// RenderBytes applies vars to file content.
	RenderBytes(name string, content []byte, vars Vars) ([]byte, error)
}

// NewDefaultEngine returns the text/template based engine.
func NewDefaultEngine() Engine {
	return textEngine{}
}
