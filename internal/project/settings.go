package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/fsutil"
	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/templates"
)

// SettingsFile is written at the root of every generated project.
const SettingsFile = "project.boom.json"

// TemplateRef identifies the template a project was created from.
type TemplateRef struct {
	Slug    string `json:"slug"`
	RootDir string `json:"root_dir,omitempty"`
}

// Settings is the decoded project settings file.
type Settings struct {
	// Context holds the persisted variables without a template reference.
	Context Context

	Template TemplateRef
}

// MarshalJSON writes the variables in context order followed by the
// template reference.
func (c Context) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, e := range c.entries {
		if e.key == KeyTemplate {
			continue
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, e.key, e.value); err != nil {
			return nil, err
		}
	}
	if c.template != nil {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		ref := TemplateRef{Slug: c.template.Slug, RootDir: c.template.RootDir}
		if err := writeMember(&buf, KeyTemplate, ref); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// SaveSettings writes c to the settings file under root.
func SaveSettings(root string, c Context) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding project settings: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("formatting project settings: %w", err)
	}
	buf.WriteByte('\n')

	path := filepath.Join(root, SettingsFile)
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	output.Debug("saved project settings", "path", path)
	return nil
}

// LoadSettings reads the settings file under root, keeping variable order.
func LoadSettings(root string) (*Settings, error) {
	path := filepath.Join(root, SettingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("project settings not found", path,
				"Run this command inside a project created by 'boom new', or pass --root.")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s, err := decodeSettings(data)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "", "")
	}
	return s, nil
}

func decodeSettings(data []byte) (*Settings, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("settings must be a JSON object")
	}

	s := &Settings{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing settings: %w", err)
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", key, err)
		}

		if key == KeyTemplate {
			if err := json.Unmarshal(raw, &s.Template); err != nil {
				return nil, fmt.Errorf("parsing %q: %w", key, err)
			}
			continue
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			output.Debug("ignoring non-string setting", "key", key)
			continue
		}
		s.Context = s.Context.With(key, value)
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if s.Template.Slug == "" && s.Template.RootDir == "" {
		return nil, errors.New("settings do not name a template")
	}
	return s, nil
}

// Restore rebuilds the project context, resolving the template in reg and
// pointing project_root at root.
func (s *Settings) Restore(reg *templates.Registry, root string) (Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Context{}, err
	}

	m, err := reg.BySlug(s.Template.Slug)
	if err != nil {
		if s.Template.RootDir == "" {
			return Context{}, err
		}
		byDir, dirErr := templates.LoadManifest(reg.Root(), s.Template.RootDir)
		if dirErr != nil {
			return Context{}, err
		}
		m = byDir
	}

	ctx := s.Context.With(KeyProjectRoot, abs).WithTemplate(m)
	output.Debug("restored project context", "root", abs, "template", m.Slug, "keys", ctx.Keys())
	return ctx, nil
}

// FindRoot returns the nearest directory at or above start that holds a
// settings file.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, SettingsFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", oerrors.NewNotFoundError("no project settings found", start,
				"Run this command inside a project created by 'boom new'.")
		}
		dir = parent
	}
}
