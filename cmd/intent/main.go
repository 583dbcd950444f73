package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emadjumaah/intenttext"
	"github.com/emadjumaah/intenttext/internal/cli"
	"github.com/emadjumaah/intenttext/internal/convert"
)

func main() {
	var debug bool
	var checkOnly bool
	var noBackup bool
	var fromMd string
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&checkOnly, "check", false, "Parse and print diagnostics only, write no output")
	flag.BoolVar(&noBackup, "no-backup", false, "Skip backups of existing output files")
	flag.StringVar(&fromMd, "from-md", "", "Convert a markdown file to IntentText and exit")
	flag.Parse()

	if debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if fromMd != "" {
		convertMarkdown(fromMd)
		return
	}

	path := flag.Arg(0)
	if path == "" {
		fmt.Println("Please provide a .it file or directory to process")
		fmt.Println("Usage: intent [flags] <path>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	processor := cli.NewProcessor(cli.Options{
		CheckOnly: checkOnly,
		NoBackup:  noBackup,
	})

	results, err := processor.ProcessPath(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, result := range results {
		if checkOnly {
			fmt.Printf("Checked %s\n", result.Path)
		} else {
			fmt.Printf("Rendered %s to %s\n", result.Path, result.OutPath)
		}
		for _, d := range result.Diagnostics {
			fmt.Printf("  %s:%d: %s [%s] %s\n", result.Path, d.Line, d.Severity, d.Code, d.Message)
			if d.Severity == intenttext.SeverityError {
				exitCode = 1
			}
		}
	}
	os.Exit(exitCode)
}

func convertMarkdown(inFile string) {
	f, err := os.Open(inFile)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	converter := convert.NewConverter()
	out, err := converter.Convert(f)
	if err != nil {
		fmt.Printf("Error converting markdown: %v\n", err)
		os.Exit(1)
	}

	outPath := strings.TrimSuffix(inFile, filepath.Ext(inFile)) + ".it"
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s to %s\n", inFile, outPath)
}
