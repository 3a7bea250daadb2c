// Package main writes the catalog-browser CLI reference, one page per
// command, as markdown for docs/cli or as man pages for packaging.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/catalog-browser/cmd/catalog-browser/cmd"
)

const (
	formatMarkdown = "markdown"
	formatMan      = "man"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	format := flag.String("format", formatMarkdown, "output format (markdown, man)")
	flag.Parse()

	if err := run(*output, *format); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("catalog-browser %s reference generated in %s/\n", *format, *output)
}

func run(output, format string) error {
	if format != formatMarkdown && format != formatMan {
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatMarkdown, formatMan)
	}

	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if format == formatMan {
		header := &doc.GenManHeader{
			Title:   "CATALOG-BROWSER",
			Section: "1",
			Source:  "catalog-browser " + cmd.Version,
			Manual:  "catalog-browser manual",
		}
		if err := doc.GenManTree(root, header, output); err != nil {
			return fmt.Errorf("generating man pages: %w", err)
		}
		return nil
	}

	if err := doc.GenMarkdownTree(root, output); err != nil {
		return fmt.Errorf("generating markdown: %w", err)
	}
	return nil
}
