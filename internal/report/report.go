// Package report prints the progress, success and error messages of a
// scaffold run.
package report

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/branding"
	"github.com/shopify-pipeline/create-shopify-pipeline/internal/naming"
)

// Colour palette.
const (
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorHighlight = lipgloss.Color("#06B6D4")
)

//go:embed templates/success.tmpl
var successTemplate string

// Command is one entry of the success summary.
type Command struct {
	Line        string
	Description string
}

// Reporter writes user-facing messages. Colours adapt to the capabilities of
// the writer, so output to a pipe or buffer is plain text.
type Reporter struct {
	out io.Writer

	success   lipgloss.Style
	errStyle  lipgloss.Style
	highlight lipgloss.Style
	cmd       lipgloss.Style
}

// New returns a Reporter writing to out.
func New(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:       out,
		success:   r.NewStyle().Foreground(ColorSuccess).Bold(true),
		errStyle:  r.NewStyle().Foreground(ColorError),
		highlight: r.NewStyle().Foreground(ColorSuccess),
		cmd:       r.NewStyle().Foreground(ColorHighlight),
	}
}

// Creating announces the target directory.
func (r *Reporter) Creating(dir string) {
	fmt.Fprintf(r.out, "Creating a new %s theme in %s\n", branding.DisplayName(), r.highlight.Render(dir))
}

// Installing announces the dependency install.
func (r *Reporter) Installing(dep, manager string) {
	fmt.Fprintf(r.out, "Installing %s with %s. This could take a while.\n", r.cmd.Render(dep), manager)
}

// Bootstrapping announces the delegated initializer.
func (r *Reporter) Bootstrapping() {
	fmt.Fprintln(r.out, "\nBootstrapping...")
}

// Commands returns the follow-up commands for a project using runPrefix
// ("yarn" or "npm run").
func Commands(runPrefix string) []Command {
	entries := []struct{ script, desc string }{
		{"serve", "Start the development server, upload files as they change"},
		{"build", "Build the theme in the `dist` folder"},
		{"deploy", "Build and deploy your theme"},
		{"test", "Run your tests"},
	}

	width := 0
	for _, e := range entries {
		if n := len(runPrefix) + 1 + len(e.script); n > width {
			width = n
		}
	}

	cmds := make([]Command, len(entries))
	for i, e := range entries {
		cmds[i] = Command{
			Line:        fmt.Sprintf("%-*s", width, runPrefix+" "+e.script),
			Description: e.desc,
		}
	}
	return cmds
}

// Success prints the summary for a project called name created in dir.
func (r *Reporter) Success(name, dir, runPrefix string) error {
	tmpl, err := template.New("success").Funcs(template.FuncMap{
		"success":   r.success.Render,
		"highlight": r.highlight.Render,
		"cmd":       r.cmd.Render,
	}).Parse(successTemplate)
	if err != nil {
		return fmt.Errorf("parsing success template: %w", err)
	}

	data := struct {
		Product     string
		Name        string
		Dir         string
		StoreConfig string
		Commands    []Command
	}{
		Product:     branding.DisplayName(),
		Name:        name,
		Dir:         dir,
		StoreConfig: branding.StoreConfigFile(),
		Commands:    Commands(runPrefix),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering success message: %w", err)
	}
	_, err = r.out.Write(buf.Bytes())
	return err
}

// Error prints err. Invalid names get a single line; everything else is
// reported as a generic failure.
func (r *Reporter) Error(err error) {
	var invalid *naming.InvalidNameError
	if errors.As(err, &invalid) {
		fmt.Fprintln(r.out, r.errStyle.Render(invalid.Error()))
		return
	}
	fmt.Fprintf(r.out, "\n%s\n%v\n\n", r.errStyle.Render("An error occurred:"), err)
}
