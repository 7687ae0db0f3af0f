package output

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// RenderDiff renders a styled, context-trimmed diff of before and after for display.
// Returns the empty string when nothing changed.
func RenderDiff(path, before, after string) string {
	lines := computeLines(before, after)

	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		changed = true
		for j := i - diffContext; j <= i+diffContext; j++ {
			if j >= 0 && j < len(lines) {
				keep[j] = true
			}
		}
	}
	if !changed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleBold.Render("--- " + path))
	sb.WriteString("\n")
	sb.WriteString(StyleBold.Render("+++ " + path))
	sb.WriteString("\n")

	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap {
			sb.WriteString(StyleDim.Render("@@"))
			sb.WriteString("\n")
			gap = false
		}
		text := prefixFor(l.op) + l.text
		switch l.op {
		case diffmatchpatch.DiffInsert:
			text = StyleAdded.Render(text)
		case diffmatchpatch.DiffDelete:
			text = StyleRemoved.Render(text)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String()
}

func computeLines(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var lines []diffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text == "" {
			continue
		}
		for _, l := range strings.Split(text, "\n") {
			lines = append(lines, diffLine{op: d.Type, text: l})
		}
	}
	return lines
}

func prefixFor(op diffmatchpatch.Operation) string {
	switch op {
	case diffmatchpatch.DiffInsert:
		return "+"
	case diffmatchpatch.DiffDelete:
		return "-"
	default:
		return " "
	}
}
