package formatter

import (
	"fmt"
	"sort"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/dtcols/pkg/columns"
)

// RenderTree renders the payload as a tree: one branch per column, labelled
// with its position and name, followed by the columnDefs value if any.
func RenderTree(p columns.Payload) string {
	tree := treeprint.NewWithRoot("columns")
	for i, c := range p.Columns {
		branch := tree.AddBranch(fmt.Sprintf("%d. %s", i+1, c.Name))
		addValue(branch, "data", c.Data)
		if c.Title != "" {
			branch.AddNode("title: " + c.Title)
		}
		for _, k := range c.Keys() {
			v, _ := c.Get(k)
			addValue(branch, k, v)
		}
	}
	if p.ColumnDefs != nil {
		addValue(tree, "columnDefs", p.ColumnDefs)
	}
	return tree.String()
}

// addValue adds key: value, recursing into maps and lists.
func addValue(branch treeprint.Tree, key string, val any) {
	switch v := val.(type) {
	case map[string]any:
		if len(v) == 0 {
			branch.AddNode(key + ": {}")
			return
		}
		child := branch.AddBranch(key)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			addValue(child, k, v[k])
		}
	case []any:
		if len(v) == 0 {
			branch.AddNode(key + ": []")
			return
		}
		child := branch.AddBranch(key)
		for i, elem := range v {
			addValue(child, fmt.Sprintf("[%d]", i), elem)
		}
	default:
		branch.AddNode(key + ": " + Stringify(v))
	}
}
