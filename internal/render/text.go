package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// placeholderOpen is the action delimiter. Text without it is returned as is.
const placeholderOpen = "{{"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type textEngine struct{}

func (e textEngine) RenderText(name, text string, vars Vars) (string, error) {
	if !strings.Contains(text, placeholderOpen) {
		return text, nil
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(helperFuncs).
		Funcs(varFuncs(vars)).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(vars)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

func (e textEngine) RenderBytes(name string, content []byte, vars Vars) ([]byte, error) {
	if !bytes.Contains(content, []byte(placeholderOpen)) {
		return content, nil
	}
	out, err := e.RenderText(name, string(content), vars)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// varFuncs exposes each string variable as a function of the same name so
// placeholders can be written without the leading dot.
func varFuncs(vars Vars) template.FuncMap {
	funcs := make(template.FuncMap, len(vars))
	for k, v := range vars {
		s, ok := v.(string)
		if !ok || !identifierPattern.MatchString(k) {
			continue
		}
		if _, builtin := helperFuncs[k]; builtin {
			continue
		}
		funcs[k] = func() string { return s }
	}
	return funcs
}
