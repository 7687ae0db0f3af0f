// Package structure reproduces template trees on disk with names and
// contents rendered from a project context.
package structure

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/project"
	"github.com/boomcli/boom/internal/render"
	"github.com/boomcli/boom/internal/templates"
)

// RenderableSuffix marks a template file whose content is rendered. It is
// stripped from the output name.
const RenderableSuffix = ".tmpl"

// Options configures a Materializer.
type Options struct {
	// Engine renders names and contents. Defaults to render.NewDefaultEngine.
	Engine render.Engine

	// Policy applies to rendered directories that already exist.
	Policy MergePolicy

	// Confirmed allows clearing a non-empty target root.
	Confirmed bool
}

// Result lists what a materialization did. Paths are slash-separated and
// relative to the target root, in walk order.
type Result struct {
	Root string

	// Created holds every written file.
	Created []string

	// SkippedDirs holds existing directories left untouched.
	SkippedDirs []string

	// KeptFiles holds existing files left untouched by PolicyMerge.
	KeptFiles []string
}

// Materializer writes template trees.
type Materializer struct {
	engine    render.Engine
	policy    MergePolicy
	confirmed bool
}

// New creates a Materializer.
func New(opts Options) *Materializer {
	m := &Materializer{
		engine:    opts.Engine,
		policy:    opts.Policy,
		confirmed: opts.Confirmed,
	}
	if m.engine == nil {
		m.engine = render.NewDefaultEngine()
	}
	if m.policy == "" {
		m.policy = DefaultPolicy
	}
	return m
}

// Materialize reproduces the manifest's tree at targetRoot. The target is
// created if missing and cleared if non-empty and confirmed. The first
// render failure aborts the run; files already written stay on disk.
func (m *Materializer) Materialize(manifest templates.Manifest, ctx project.Context, targetRoot string) (*Result, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	kind := manifest.Kind()
	if kind == nil {
		return nil, oerrors.NewInvalidManifestError(manifest.AbsDir,
			fmt.Errorf("unknown template type %q", manifest.Type))
	}

	if err := PrepareTarget(targetRoot, m.confirmed); err != nil {
		return nil, err
	}

	output.Debug("materializing template", "slug", manifest.Slug, "source", manifest.AbsDir, "target", targetRoot)
	return m.copyTree(manifest.AbsDir, targetRoot, ctx.Vars(), kind.TopLevelEntry)
}

// CopyTree reproduces source at target without a top-level filter. The
// target must already be prepared.
func (m *Materializer) CopyTree(source, target string, vars render.Vars) (*Result, error) {
	return m.copyTree(source, target, vars, nil)
}

type topLevelFilter func(name string, isDir bool) (string, bool)

func (m *Materializer) copyTree(source, target string, vars render.Vars, filter topLevelFilter) (*Result, error) {
	w := &walker{
		m:      m,
		vars:   vars,
		root:   target,
		filter: filter,
		result: &Result{Root: target},
	}
	if err := w.dir(source, target, true); err != nil {
		return w.result, err
	}
	return w.result, nil
}

type walker struct {
	m      *Materializer
	vars   render.Vars
	root   string
	filter topLevelFilter
	result *Result
}

func (w *walker) dir(src, dst string, top bool) error {
	// os.ReadDir returns entries sorted by name.
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", src, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		srcPath := filepath.Join(src, name)

		// File symlinks are copied as their target's content.
		info, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("reading template entry %s: %w", srcPath, err)
		}
		isDir := info.IsDir()
		if isDir && entry.Type()&fs.ModeSymlink != 0 {
			return oerrors.NewInvalidManifestError(srcPath,
				fmt.Errorf("directory symlink %s is not supported in templates", name))
		}

		if !isDir && name == templates.ManifestFile {
			continue
		}

		raw := name
		if top && w.filter != nil {
			out, ok := w.filter(name, isDir)
			if !ok {
				output.Debug("skipping top-level entry", "name", name)
				continue
			}
			raw = out
		}

		renderable := false
		if !isDir && strings.HasSuffix(raw, RenderableSuffix) && raw != RenderableSuffix {
			raw = strings.TrimSuffix(raw, RenderableSuffix)
			renderable = true
		}

		outName, err := w.renderName(srcPath, raw)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, outName)

		if isDir {
			if err := w.subdir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := w.file(srcPath, dstPath, renderable, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) subdir(src, dst string) error {
	info, err := os.Stat(dst)
	switch {
	case err == nil && !info.IsDir():
		return oerrors.NewInvalidTargetError("a file exists where a directory is expected", dst, nil)
	case err == nil && w.m.policy == PolicySkip:
		output.Debug("skipping existing directory", "path", dst)
		w.result.SkippedDirs = append(w.result.SkippedDirs, w.rel(dst))
		return nil
	case err == nil:
		// Overwrite and merge descend into the existing directory.
	case os.IsNotExist(err):
		if err := os.Mkdir(dst, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dst, err)
		}
	default:
		return fmt.Errorf("checking %s: %w", dst, err)
	}
	return w.dir(src, dst, false)
}

func (w *walker) file(src, dst string, renderable bool, perm os.FileMode) error {
	if w.m.policy == PolicyMerge {
		if _, err := os.Lstat(dst); err == nil {
			output.Debug("keeping existing file", "path", dst)
			w.result.KeptFiles = append(w.result.KeptFiles, w.rel(dst))
			return nil
		}
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", src, err)
	}

	if renderable {
		content, err = w.m.engine.RenderBytes(src, content, w.vars)
		if err != nil {
			return oerrors.NewRenderError(src, err)
		}
	}

	if err := os.WriteFile(dst, content, perm); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	output.Debug("created file", "path", dst)
	w.result.Created = append(w.result.Created, w.rel(dst))
	return nil
}

// renderName renders an entry name and rejects results that would leave the
// parent directory.
func (w *walker) renderName(src, raw string) (string, error) {
	out, err := w.m.engine.RenderText(src, raw, w.vars)
	if err != nil {
		return "", oerrors.NewRenderError(src, err)
	}
	if out == "" || out == "." || out == ".." || strings.ContainsAny(out, `/\`) {
		return "", oerrors.NewRenderError(src, fmt.Errorf("name %q renders to invalid file name %q", raw, out))
	}
	return out, nil
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
