package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/grovetools/tour/tui/theme"
)

const (
	maxWidth = 60
	minWidth = 40
)

// getTerminalWidth returns the stdout width clamped to [minWidth, maxWidth],
// or maxWidth when stdout is not a terminal.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth || width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			lines = append(lines, paragraph)
			continue
		}
		var line strings.Builder
		for _, word := range strings.Fields(paragraph) {
			if line.Len() > 0 && line.Len()+1+len(word) > width {
				lines = append(lines, line.String())
				line.Reset()
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return strings.Join(lines, "\n")
}

// SetStyledHelp applies the styled help to a command.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		renderHelp(cmd.OutOrStdout(), cmd, getTerminalWidth()-2)
	})
}

// ApplyStyledHelpRecursive applies styled help to cmd and every subcommand.
// Call it after all subcommands are added.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	SetStyledHelp(cmd)
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// parseDescription splits a Long text at its "Examples:" heading.
func parseDescription(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

type helpStyles struct {
	theme   *theme.Theme
	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	example lipgloss.Style
	short   lipgloss.Style
}

func newHelpStyles() helpStyles {
	t := theme.DefaultTheme
	return helpStyles{
		theme:   t,
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange),
		section: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
		example: lipgloss.NewStyle().Foreground(t.Colors.Cyan),
		short:   lipgloss.NewStyle().Italic(true),
	}
}

func renderHelp(w io.Writer, cmd *cobra.Command, width int) {
	s := newHelpStyles()
	fmt.Fprintln(w, " "+s.title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := cmd.Short, cmd.Example
	if cmd.Long != "" {
		var fromLong string
		description, fromLong = parseDescription(cmd.Long)
		if examples == "" {
			examples = fromLong
		}
	}
	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(w, " "+s.short.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	s.usage(w, cmd)
	s.commands(w, cmd)
	s.flags(w, "FLAGS", cmd.LocalFlags())
	s.flags(w, "GLOBAL FLAGS", cmd.InheritedFlags())
	s.examples(w, examples)

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

func (s helpStyles) usage(w io.Writer, cmd *cobra.Command) {
	if !cmd.Runnable() && !cmd.HasSubCommands() {
		return
	}
	fmt.Fprintln(w, "\n "+s.section.Render("USAGE"))
	if cmd.Runnable() {
		fmt.Fprintf(w, " %s\n", cmd.UseLine())
	}
	if cmd.HasSubCommands() {
		fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
	}
}

func (s helpStyles) commands(w io.Writer, cmd *cobra.Command) {
	var subs []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			subs = append(subs, sub)
			width = max(width, len(sub.Name()))
		}
	}
	if len(subs) == 0 {
		return
	}
	fmt.Fprintln(w, "\n "+s.section.Render("COMMANDS"))
	for _, sub := range subs {
		pad := strings.Repeat(" ", width-len(sub.Name()))
		fmt.Fprintf(w, " %s%s  %s\n", s.name.Render(sub.Name()), pad, sub.Short)
	}
}

func (s helpStyles) flags(w io.Writer, title string, set *pflag.FlagSet) {
	var visible []*pflag.Flag
	width := 0
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		visible = append(visible, f)
		width = max(width, len(formatFlagName(f)))
	})
	if len(visible) == 0 {
		return
	}

	fmt.Fprintln(w, "\n "+s.section.Render(title))
	for _, f := range visible {
		name := formatFlagName(f)
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
			usage += s.theme.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		fmt.Fprintf(w, " %s%s  %s\n", s.flag.Render(name), strings.Repeat(" ", width-len(name)), usage)
	}
}

func (s helpStyles) examples(w io.Writer, examples string) {
	if examples == "" {
		return
	}
	fmt.Fprintln(w, "\n "+s.section.Render("EXAMPLES"))
	for _, line := range strings.Split(examples, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			fmt.Fprintln(w)
		case strings.HasPrefix(trimmed, "#"):
			fmt.Fprintln(w, " "+s.theme.Muted.Render(trimmed))
		default:
			fmt.Fprintln(w, "   "+s.example.Render(trimmed))
		}
	}
}

// formatFlagName returns "-f, --flag" or "    --flag".
func formatFlagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
