package templates

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema/manifest.cue
var manifestSchemaCUE []byte

// ManifestValidator checks manifest documents against the embedded CUE schema.
type ManifestValidator struct {
	ctx *cue.Context
	def cue.Value
}

// NewManifestValidator compiles the embedded manifest schema.
func NewManifestValidator() (*ManifestValidator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(manifestSchemaCUE, cue.Filename("manifest.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("looking up #Manifest: %w", err)
	}

	return &ManifestValidator{ctx: ctx, def: def}, nil
}

// Validate unifies the JSON document with #Manifest and reports every violation.
// filename is used only for error positions.
func (v *ManifestValidator) Validate(filename string, data []byte) error {
	doc := v.ctx.CompileBytes(data, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parsing manifest: %s", formatCUEError(err))
	}

	if err := v.def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", formatCUEError(err))
	}
	return nil
}

// formatCUEError flattens CUE errors to "path: message" lines.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}

	lines := make([]string, 0, len(errs))
	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := strings.Join(e.Path(), "."); path != "" {
			msg = path + ": " + msg
		}
		if seen[msg] {
			continue
		}
		seen[msg] = true
		lines = append(lines, msg)
	}
	return strings.Join(lines, "; ")
}
