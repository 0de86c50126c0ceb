package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// SimpleTable prints a key/value table.
func SimpleTable(w io.Writer, pairs [][2]string) error {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(":")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, pair := range pairs {
		table.Append([]string{pair[0], pair[1]})
	}

	table.Render()
	return nil
}

// Flatten turns a nested report into dotted key/value rows sorted by key.
// List elements are addressed by index, lists of strings are joined.
func Flatten(values map[string]interface{}) [][2]string {
	var rows [][2]string
	flatten("", values, &rows)
	return rows
}

func flatten(key string, value interface{}, rows *[][2]string) {
	switch v := value.(type) {
	case nil:
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(join(key, k), v[k], rows)
		}
	case []map[string]interface{}:
		for i, item := range v {
			flatten(fmt.Sprintf("%s[%d]", key, i), item, rows)
		}
	case []string:
		*rows = append(*rows, [2]string{key, strings.Join(v, ", ")})
	default:
		*rows = append(*rows, [2]string{key, fmt.Sprint(v)})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
