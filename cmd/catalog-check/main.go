// Command catalog-check validates a product catalog CSV offline and prints
// what the service would load from it.
package main

import (
	"flag"
	"fmt"
	"os"

	"trade_enrichment_backend/internal/catalog/loader"
)

func main() {
	path := flag.String("file", "data/products.csv", "path to the product catalog CSV")
	flag.Parse()

	products, stats, err := loader.LoadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-check: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("file:       %s\n", *path)
	fmt.Printf("rows read:  %d\n", stats.RowsRead)
	fmt.Printf("loaded:     %d\n", stats.Loaded)
	fmt.Printf("skipped:    %d\n", stats.Skipped)
	fmt.Printf("duplicates: %d\n", stats.Duplicates)

	if len(products) == 0 {
		fmt.Fprintln(os.Stderr, "catalog-check: no valid products in file")
		os.Exit(1)
	}
}
