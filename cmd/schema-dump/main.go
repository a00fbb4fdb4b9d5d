// Command schema-dump prints the recognized table schemas: every
// category's canonical field set and each source's column binding for
// it. Useful when a site changes a table layout.
package main

import (
	"fmt"

	"github.com/grdn/statfuse/internal/domain/schema"
)

func main() {
	fmt.Printf("schema version %d\n\n", schema.Version)
	for _, table := range schema.MergeOrder() {
		fields, ok := schema.Category(table)
		if !ok {
			continue
		}
		fmt.Printf("%s (%d fields)\n", table, len(fields))
		for _, f := range fields {
			fmt.Printf("  %-28s %s\n", f.Name, kindName(f.Kind))
		}
		for _, src := range schema.Sources(table) {
			binding, _ := schema.Lookup(src, table)
			fmt.Printf("  [%s] name=%s id=%s team=%s", src, binding.NameCol, binding.IDCol, binding.TeamCol)
			if binding.PosCol != "" {
				fmt.Printf(" pos=%s", binding.PosCol)
			}
			fmt.Printf(" columns=%d\n", len(binding.Columns))
		}
		fmt.Println()
	}
}

func kindName(k schema.Kind) string {
	switch k {
	case schema.Text:
		return "text"
	case schema.Int:
		return "int"
	default:
		return "float"
	}
}
