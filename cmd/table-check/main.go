// Command table-check validates a score lookup table export before it is
// deployed: it parses the CSV, builds the lookup index, and reports category
// counts and duplicate combinations.
package main

import (
	"flag"
	"fmt"
	"os"

	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/internal/scores/loader"
	"oppscore_backend/platform/config"
	"oppscore_backend/platform/logger"
)

func main() {
	path := flag.String("file", "", "path to the lookup table CSV (defaults to LOOKUP_TABLE_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	target := *path
	if target == "" {
		target = cfg.GetLookupTablePath()
	}

	rows, err := loader.LoadFile(target)
	if err != nil {
		log.Error("lookup table rejected", "file", target, "error", err)
		fmt.Fprintf(os.Stderr, "invalid lookup table: %v\n", err)
		os.Exit(1)
	}

	index := domain.BuildIndex(rows)

	states, _ := index.States()
	corpTypes, _ := index.CorpTypes()
	empSizes, _ := index.EmpSizes()

	fmt.Printf("lookup table: %s\n", target)
	fmt.Printf("rows parsed: %d\n", len(rows))
	fmt.Printf("unique combinations: %d\n", index.Len())
	fmt.Printf("states: %d\n", len(states))
	fmt.Printf("corp types: %d\n", len(corpTypes))
	fmt.Printf("emp sizes: %d\n", len(empSizes))

	if dups := len(rows) - index.Len(); dups > 0 {
		fmt.Printf("duplicate combinations: %d (last occurrence wins)\n", dups)
	}

	log.Info("lookup table validated", "file", target, "rows", len(rows), "combinations", index.Len())
}
