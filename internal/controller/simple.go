package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "solflat.dev/pkg/solflat/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex

	failed    *color.Color
	succeeded *color.Color
	added     *color.Color
	removed   *color.Color
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:       cmd,
		failed:    color.New(color.FgRed, color.Bold),
		succeeded: color.New(color.FgGreen),
		added:     color.New(color.FgGreen),
		removed:   color.New(color.FgRed),
	}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayBuildStarted announces an entry.
func (s *SimpleUI) DisplayBuildStarted(ctx context.Context, entry m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Building %s\n", entry)
}

// DisplayBuildSucceeded prints the artifact location and a table of compiled units.
func (s *SimpleUI) DisplayBuildSucceeded(ctx context.Context, entry m.Path, artifact m.Path, units m.UnitTable) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s -> %s (%d units)\n%s", s.succeeded.Sprint("Built"), entry, artifact, len(units), renderUnitTable(units))
}

// DisplayCompileErrors prints every remapped compiler error of an entry.
func (s *SimpleUI) DisplayCompileErrors(ctx context.Context, entry m.Path, errs []*m.CompileError) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %d compile error(s)\n", s.failed.Sprint("Failed"), entry, len(errs))

	for _, ce := range errs {
		fmt.Fprintf(&b, "  %s\n", indentContinuation(ce.Error(), "    "))
	}

	s.printf("%s", b.String())
}

// DisplayBuildFailed prints a non-compiler failure.
func (s *SimpleUI) DisplayBuildFailed(ctx context.Context, entry m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("%s %s: %v\n", s.failed.Sprint("Failed"), entry, err)
}

// DisplayFlattened prints flattened source exactly as produced.
func (s *SimpleUI) DisplayFlattened(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", text)

	return nil
}

// DisplayDiff prints a unified diff, colouring added and removed lines.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("No constant overrides applied.\n")
		return nil
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(line)
		case strings.HasPrefix(line, "+"):
			b.WriteString(s.added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(s.removed.Sprint(line))
		default:
			b.WriteString(line)
		}
	}

	s.printf("%s", b.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cmd.Printf(format, args...)
}

func renderUnitTable(units m.UnitTable) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Unit", "ABI entries", "Bytecode"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	total := 0

	for _, name := range units.Names() {
		unit := units[name]
		total += unit.BytecodeSize()

		table.Append([]string{name, fmt.Sprintf("%d", len(unit.Interface)), formatBytes(unit.BytecodeSize())})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Units %d", len(units)), "", formatBytes(total)})

	table.Render()

	return tableBuffer.String()
}

func formatBytes(n int) string {
	if n < 0 {
		n = 0
	}

	return humanize.Bytes(uint64(n))
}

func indentContinuation(text, indent string) string {
	return strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\n"+indent)
}
