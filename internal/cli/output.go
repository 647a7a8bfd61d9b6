package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/newproject-dev/new-project/internal/scaffold"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// printSummary writes the post-run summary. Styling is dropped automatically
// when w is not a terminal.
func printSummary(w io.Writer, result *scaffold.Result) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	detail := r.NewStyle().Faint(true)

	plan := result.Plan
	fmt.Fprintln(w, title.Render("Created project in "+result.ProjectDir))
	fmt.Fprintln(w, detail.Render(printer.Sprintf("%d directories, %d files copied, %d rendered",
		createdDirs(plan), len(plan.Copies), len(plan.Renders))))
}

// printPlan lists the classified work of a dry run, one line per entry.
func printPlan(w io.Writer, result *scaffold.Result) {
	plan := result.Plan
	for _, d := range plan.Dirs {
		if d.Rel == "." {
			continue
		}
		fmt.Fprintf(w, "mkdir   %s/\n", d.Rel)
	}
	for _, c := range plan.Copies {
		fmt.Fprintf(w, "copy    %s\n", c.Rel)
	}
	for _, j := range plan.Renders {
		fmt.Fprintf(w, "render  %s\n", j.Name)
	}
	fmt.Fprintln(w, printer.Sprintf("dry run: %d directories, %d files copied, %d rendered into %s",
		createdDirs(plan), len(plan.Copies), len(plan.Renders), result.ProjectDir))
}

// createdDirs excludes the project root, which always leads the queue.
func createdDirs(plan *scaffold.Plan) int {
	n := 0
	for _, d := range plan.Dirs {
		if d.Rel != "." {
			n++
		}
	}
	return n
}
