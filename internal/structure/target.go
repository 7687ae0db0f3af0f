package structure

import (
	"fmt"
	"os"
	"path/filepath"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
)

// TargetState is the observed state of a target root.
type TargetState int

const (
	// TargetMissing means the path does not exist yet.
	TargetMissing TargetState = iota

	// TargetEmpty is an existing empty directory.
	TargetEmpty

	// TargetNonEmpty is an existing directory with entries.
	TargetNonEmpty
)

func (s TargetState) String() string {
	switch s {
	case TargetMissing:
		return "missing"
	case TargetEmpty:
		return "empty"
	case TargetNonEmpty:
		return "not empty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// InspectTarget reports the state of path. A path that exists but is not a
// directory, or that cannot be read, is an invalid target.
func InspectTarget(path string) (TargetState, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return TargetMissing, nil
	}
	if err != nil {
		return 0, oerrors.NewInvalidTargetError("cannot access target", path, err)
	}
	if !info.IsDir() {
		return 0, oerrors.NewInvalidTargetError("target exists and is not a directory", path, nil)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, oerrors.NewInvalidTargetError("cannot read target", path, err)
	}
	if len(entries) > 0 {
		return TargetNonEmpty, nil
	}
	return TargetEmpty, nil
}

// PrepareTarget makes path an empty directory. A non-empty directory is only
// cleared when confirmed is true; otherwise a would-overwrite error is
// returned and nothing is touched.
func PrepareTarget(path string, confirmed bool) error {
	state, err := InspectTarget(path)
	if err != nil {
		return err
	}

	switch state {
	case TargetMissing:
		output.Debug("creating target", "path", path)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return oerrors.NewInvalidTargetError("cannot create target", path, err)
		}
	case TargetNonEmpty:
		if !confirmed {
			return oerrors.NewWouldOverwriteError(path)
		}
		if err := ClearDir(path); err != nil {
			return err
		}
	}
	return nil
}

// ClearDir removes every entry of dir, leaving dir itself in place.
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return oerrors.NewInvalidTargetError("cannot read target", dir, err)
	}

	output.Debug("emptying target", "path", dir, "entries", len(entries))
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
