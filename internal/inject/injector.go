// Package inject inserts registration lines into generated source files at
// marker-anchored positions without duplicating existing lines.
package inject

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/fsutil"
	"github.com/boomcli/boom/internal/output"
)

// Outcome is the result of a single injection attempt.
type Outcome int

const (
	// Inserted means the line was added.
	Inserted Outcome = iota

	// AlreadyPresent means an equal line exists and the file was left alone.
	AlreadyPresent

	// MarkerNotFound means the anchor is absent; the file was not modified.
	MarkerNotFound
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already present"
	case MarkerNotFound:
		return "marker not found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Request describes one line to insert into one file.
type Request struct {
	// Path is the target file.
	Path string

	// Line is the content to insert, without indentation.
	Line string

	// Marker is a literal substring locating the insertion block. When empty
	// the block starts at the first line matching Pattern.
	Marker string

	// Pattern matches the lines of the contiguous block to insert after.
	// A nil pattern matches nothing, so only blank lines are skipped.
	Pattern *regexp.Regexp

	// Indent is prepended to Line.
	Indent string

	// MatchMarkerIndent replaces Indent with the marker line's indentation.
	MatchMarkerIndent bool

	// Idempotent skips insertion when a line equal to Line (ignoring
	// surrounding whitespace) already exists anywhere in the file. This is
	// stricter than substring matching: "from . import blog" is not present
	// in a file that only holds "from . import blog_admin".
	Idempotent bool
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Line) == "" {
		return oerrors.NewValidationError("injection line is empty", r.Path, "line", "")
	}
	if strings.ContainsAny(r.Line, "\r\n") {
		return oerrors.NewValidationError("injection line must be a single line", r.Path, "line", "")
	}
	return nil
}

// Result reports what an injection did or would do.
type Result struct {
	Path    string
	Outcome Outcome

	// Index is the zero-based line index of the inserted or existing line.
	// It is -1 for MarkerNotFound.
	Index int

	// Before and After hold the file content; they are equal unless the
	// outcome is Inserted.
	Before string
	After  string
}

// Changed reports whether the file content differs.
func (r *Result) Changed() bool {
	return r.Before != r.After
}

// Diff renders a line diff of the change, or "" when nothing changed.
func (r *Result) Diff() string {
	return output.RenderDiff(r.Path, r.Before, r.After)
}

// Compute plans a request against a line sequence without touching the
// filesystem. It returns the outcome, the line index, and the new lines.
func Compute(lines []string, req Request) (Outcome, int, []string) {
	if req.Idempotent {
		want := strings.TrimSpace(req.Line)
		for i, l := range lines {
			if strings.TrimSpace(l) == want {
				return AlreadyPresent, i, lines
			}
		}
	}

	start, found := scanStart(lines, req)
	if !found {
		return MarkerNotFound, -1, lines
	}

	indent := req.Indent
	if req.MatchMarkerIndent && req.Marker != "" {
		indent = leadingSpace(lines[start])
	}

	idx := 0
	if start >= 0 {
		idx = InsertionIndex(lines, start, req.Pattern)
	}

	out := slices.Insert(slices.Clone(lines), idx, indent+req.Line)
	return Inserted, idx, out
}

// scanStart returns the block start line or -1 when an unanchored request
// finds no matching line and should insert at the top of the file.
func scanStart(lines []string, req Request) (int, bool) {
	if req.Marker != "" {
		for i, l := range lines {
			if strings.Contains(l, req.Marker) {
				return i, true
			}
		}
		return -1, false
	}

	if req.Pattern != nil {
		for i, l := range lines {
			if req.Pattern.MatchString(l) {
				return i, true
			}
		}
	}
	return -1, true
}

// InsertionIndex returns the index after the run of lines following start
// that match pattern or are blank. Trailing blank lines of the run are not
// included, so the new line sits directly under the last matching line.
func InsertionIndex(lines []string, start int, pattern *regexp.Regexp) int {
	idx := start + 1
	for idx < len(lines) {
		l := lines[idx]
		if isBlank(l) || (pattern != nil && pattern.MatchString(l)) {
			idx++
			continue
		}
		break
	}
	for idx > start+1 && isBlank(lines[idx-1]) {
		idx--
	}
	return min(idx, len(lines))
}

// Plan reads the target file and computes the result of req without writing.
func Plan(req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.Path, err)
	}

	before := string(data)
	doc := parseDocument(before)
	outcome, idx, lines := Compute(doc.lines, req)
	doc.lines = lines

	res := &Result{
		Path:    req.Path,
		Outcome: outcome,
		Index:   idx,
		Before:  before,
		After:   before,
	}
	if outcome == Inserted {
		res.After = doc.String()
	}
	return res, nil
}

// Inject applies req to its file. Only an Inserted outcome writes, and the
// file is replaced atomically.
func Inject(req Request) (*Result, error) {
	res, err := Plan(req)
	if err != nil {
		return nil, err
	}

	if res.Outcome != Inserted {
		output.Debug("injection skipped", "path", req.Path, "outcome", res.Outcome)
		return res, nil
	}

	if err := fsutil.WriteFileAtomic(req.Path, []byte(res.After), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", req.Path, err)
	}
	output.Debug("injected line", "path", req.Path, "line", res.Index+1)
	return res, nil
}
