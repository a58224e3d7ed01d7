// Command catalogcheck validates a project catalog dataset and prints a
// summary of its contents and any integrity problems.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"standardglass-api/internal/catalog"
	"standardglass-api/internal/models"
	"standardglass-api/pkg/seed"
)

const usage = "Usage: catalogcheck --file=projects.yaml [--quiet]"

type document struct {
	seed.Header `yaml:",inline"`
	Projects    []models.Project `yaml:"projects"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 when the dataset is valid, 1 when it has problems and 2 on
// usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	var filePath string
	quiet := false

	for _, arg := range args {
		if strings.HasPrefix(arg, "--file=") {
			filePath = strings.TrimPrefix(arg, "--file=")
		} else if arg == "--quiet" {
			quiet = true
		} else {
			fmt.Fprintf(stderr, "Error: unknown argument %q\n", arg)
			fmt.Fprintln(stderr, usage)
			return 2
		}
	}

	if filePath == "" {
		fmt.Fprintln(stderr, "Error: file is required")
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var doc document
	if err := seed.DecodeFile(filePath, &doc); err != nil {
		fmt.Fprintf(stderr, "Decode failed: %v\n", err)
		return 1
	}

	issues := catalog.Check(doc.Projects)

	if !quiet {
		printSummary(stdout, filePath, doc.Projects)
	}

	if len(issues) > 0 {
		fmt.Fprintf(stdout, "\nProblems (%d):\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(stdout, "  %s\n", issue.Error())
		}
		return 1
	}

	fmt.Fprintln(stdout, "OK")
	return 0
}

func printSummary(w io.Writer, path string, projects []models.Project) {
	counts := make(map[string]int)
	featured := 0
	for _, p := range projects {
		counts[p.Category]++
		if p.Featured {
			featured++
		}
	}

	fmt.Fprintf(w, "Checking %s\n", path)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Total projects: %d\n", len(projects))
	fmt.Fprintf(w, "Featured: %d\n", featured)
	fmt.Fprintln(w, "\nBy category:")
	for _, name := range catalog.Categories() {
		if name == catalog.All {
			continue
		}
		fmt.Fprintf(w, "  %-14s %d\n", name, counts[name])
	}
}
