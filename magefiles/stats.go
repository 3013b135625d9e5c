//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
)

// locCount holds production and test line counts for one source tree.
type locCount struct {
	prod, test int
}

// Stats prints Go lines of code per top-level tree and documentation word
// counts.
func Stats() error {
	counts := map[string]*locCount{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case "vendor", ".git", "_examples", "magefiles", binaryDir:
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		tree := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
		c, ok := counts[tree]
		if !ok {
			c = &locCount{}
			counts[tree] = c
		}
		n := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	trees := make([]string, 0, len(counts))
	for tree := range counts {
		trees = append(trees, tree)
	}
	sort.Strings(trees)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TREE\tPROD\tTEST\t")
	var total locCount
	for _, tree := range trees {
		c := counts[tree]
		fmt.Fprintf(w, "%s\t%d\t%d\t\n", tree, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Fprintf(w, "total\t%d\t%d\t\n", total.prod, total.test)
	if err := w.Flush(); err != nil {
		return err
	}

	words, err := docWords("*.md", "docs/*.md")
	if err != nil {
		return err
	}
	fmt.Printf("\nWords (documentation): %d\n", words)
	return nil
}

// docWords counts whitespace-separated words in every file matching the
// patterns.
func docWords(patterns ...string) (int, error) {
	total := 0
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return 0, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			total += len(strings.Fields(string(data)))
		}
	}
	return total, nil
}
