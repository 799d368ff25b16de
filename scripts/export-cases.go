//go:build ignore

// Export flagged edits from an edit database as extraction benchmark cases.
// The current Extract output is stored as the expected context so later
// changes to extraction show up as mismatches in wikiedits-bench.
// Usage: go run ./scripts/export-cases.go -db wikiedits.db -out testdata/extract/db.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jamesainslie/wikiedits"
	"github.com/jamesainslie/wikiedits/internal/store"
)

type exportCase struct {
	ID   string `json:"id"`
	Edit string `json:"edit"`
	Text string `json:"text"`
	Want string `json:"want"`
}

type suite struct {
	Source string       `json:"source"`
	Cases  []exportCase `json:"cases"`
}

func main() {
	dbPath := flag.String("db", "wikiedits.db", "Cleaned edit database")
	outPath := flag.String("out", "testdata/extract/db.json", "Output case file")
	limit := flag.Int("limit", 500, "Maximum number of cases")
	flag.Parse()

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Path: *dbPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	edits, err := st.EditsWithContent(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	out := suite{Source: *dbPath}
	for _, e := range edits {
		if len(out.Cases) == *limit {
			break
		}
		if !wikiedits.IsMeaningful(e.Updated, e.Revision, 1) {
			continue
		}
		out.Cases = append(out.Cases, exportCase{
			ID:   strconv.FormatInt(e.ID, 10),
			Edit: e.Updated,
			Text: e.Revision,
			Want: wikiedits.Extract(e.Updated, e.Revision),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d cases to %s\n", len(out.Cases), *outPath)
}
