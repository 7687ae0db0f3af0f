package output

import (
	"sort"
	"strings"
)

const (
	treeBranch = "├── "
	treeCorner = "└── "
	treePipe   = "│   "
	treeBlank  = "    "

	statusColumn = 36
)

// TreeEntry is one materialized path, with an optional status word shown
// next to it.
type TreeEntry struct {
	Path   string
	Status string
}

type treeNode struct {
	name     string
	status   string
	dir      bool
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

// sorted returns directories first, then files, each alphabetically.
func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dir != out[j].dir {
			return out[i].dir
		}
		return out[i].name < out[j].name
	})
	return out
}

// RenderFileTree draws entries as a tree under rootName. Entry paths are
// slash-separated and relative to the root; a trailing slash marks a
// directory.
func RenderFileTree(rootName string, entries []TreeEntry) string {
	if len(entries) == 0 {
		return ""
	}

	root := &treeNode{name: rootName, dir: true}
	for _, e := range entries {
		isDir := strings.HasSuffix(e.Path, "/")
		parts := strings.Split(strings.Trim(e.Path, "/"), "/")
		node := root
		for i, part := range parts {
			node = node.child(part)
			if i < len(parts)-1 || isDir {
				node.dir = true
			}
		}
		node.status = e.Status
	}

	var sb strings.Builder
	sb.WriteString(StyleBold.Render(rootName + "/"))
	sb.WriteString("\n")
	writeChildren(&sb, root, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, n *treeNode, prefix string) {
	children := n.sorted()
	for i, c := range children {
		last := i == len(children)-1
		connector, indent := treeBranch, treePipe
		if last {
			connector, indent = treeCorner, treeBlank
		}

		line := prefix + connector + c.name
		if c.dir {
			line += "/"
		}
		if c.status != "" {
			pad := statusColumn - len([]rune(line))
			if pad < 2 {
				pad = 2
			}
			line += strings.Repeat(" ", pad) + StatusStyle(c.status).Render(c.status)
		}
		sb.WriteString(line)
		sb.WriteString("\n")

		writeChildren(sb, c, prefix+indent)
	}
}
