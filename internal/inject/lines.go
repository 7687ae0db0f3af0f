package inject

import "strings"

// document is a file split into lines with its line-ending style recorded so
// it can be reassembled without changing untouched bytes.
type document struct {
	lines    []string
	eol      string
	trailing bool
}

func parseDocument(content string) document {
	doc := document{eol: "\n"}
	if content == "" {
		doc.trailing = true
		return doc
	}
	if strings.Contains(content, "\r\n") {
		doc.eol = "\r\n"
	}

	doc.trailing = strings.HasSuffix(content, "\n")
	body := strings.TrimSuffix(content, doc.eol)
	if doc.eol == "\r\n" && body == content {
		body = strings.TrimSuffix(content, "\n")
	}

	doc.lines = strings.Split(body, "\n")
	if doc.eol == "\r\n" {
		for i, l := range doc.lines {
			doc.lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return doc
}

func (d document) String() string {
	s := strings.Join(d.lines, d.eol)
	if d.trailing && len(d.lines) > 0 {
		s += d.eol
	}
	return s
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
