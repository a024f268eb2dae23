// Command catalogctl validates a JSONL catalog file and prints its shape:
// record count, category schema, and entry names. Run it against a new
// guidebook edition before deploying it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bokji-cloud/genie/internal/catalog"
)

func main() {
	showSchema := flag.Bool("schema", false, "print the rendered category schema context")
	showEntries := flag.Bool("entries", false, "print distinct entry names")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: catalogctl [-schema] [-entries] <catalog.jsonl>")
		os.Exit(2)
	}

	store, err := catalog.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl: %v\n", err)
		os.Exit(1)
	}

	schema := store.Schema()
	fmt.Printf("records: %d\n", store.Len())
	fmt.Printf("entries: %d\n", len(schema.EntryNames))

	if *showSchema {
		fmt.Println()
		fmt.Println(schema.ContextString)
	}
	if *showEntries {
		fmt.Println()
		for _, name := range schema.EntryNames {
			fmt.Println(name)
		}
	}
}
