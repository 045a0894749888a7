package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "solflat.dev/pkg/solflat/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Faint(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI implements UI using Bubble Tea for a live progress view.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.program = tea.NewProgram(newBuildModel(cfg.entries), tea.WithOutput(t.output), tea.WithInput(nil))
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("progress view stopped", "error", err)
		}
	}()

	return nil
}

// Close asks the program to render its final frame and waits for it to exit.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(buildFinishedMsg{})
	<-done
}

// DisplayBuildStarted marks an entry as running.
func (t *TUI) DisplayBuildStarted(_ context.Context, entry m.Path) {
	t.send(entryStartedMsg{entry: entry})
}

// DisplayBuildSucceeded marks an entry as built.
func (t *TUI) DisplayBuildSucceeded(_ context.Context, entry m.Path, artifact m.Path, units m.UnitTable) {
	size := 0
	for _, unit := range units {
		size += unit.BytecodeSize()
	}

	t.send(entrySucceededMsg{entry: entry, artifact: artifact, units: len(units), bytes: size})
}

// DisplayCompileErrors marks an entry as failed and lists its errors.
func (t *TUI) DisplayCompileErrors(_ context.Context, entry m.Path, errs []*m.CompileError) {
	lines := make([]string, 0, len(errs))
	for _, ce := range errs {
		lines = append(lines, ce.Location()+": "+ce.Summary())
	}

	t.send(entryFailedMsg{entry: entry, details: lines})
}

// DisplayBuildFailed marks an entry as failed for a non-compiler reason.
func (t *TUI) DisplayBuildFailed(_ context.Context, entry m.Path, err error) {
	t.send(entryFailedMsg{entry: entry, details: []string{err.Error()}})
}

// DisplayFlattened writes flattened source unchanged; it is meant to be piped.
func (t *TUI) DisplayFlattened(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(t.output, text)

	return err
}

// DisplayDiff writes the diff with added and removed lines styled.
func (t *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		_, err := fmt.Fprintln(t.output, pendingStyle.Render("No constant overrides applied."))
		return err
	}

	var b strings.Builder

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(titleStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(okStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(failStyle.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(msg)
}

type entryState int

const (
	statePending entryState = iota
	stateRunning
	stateSucceeded
	stateFailed
)

type entryRow struct {
	entry    m.Path
	state    entryState
	artifact m.Path
	units    int
	bytes    int
	details  []string
}

type (
	entryStartedMsg struct {
		entry m.Path
	}
	entrySucceededMsg struct {
		entry    m.Path
		artifact m.Path
		units    int
		bytes    int
	}
	entryFailedMsg struct {
		entry   m.Path
		details []string
	}
	buildFinishedMsg struct{}
)

// buildModel is the Bubble Tea model behind the progress view.
type buildModel struct {
	rows     []entryRow
	spinner  spinner.Model
	finished bool
}

func newBuildModel(entries []m.Path) buildModel {
	rows := make([]entryRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entryRow{entry: entry})
	}

	return buildModel{
		rows:    rows,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (bm buildModel) Init() tea.Cmd {
	return bm.spinner.Tick
}

func (bm buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entryStartedMsg:
		bm.row(msg.entry).state = stateRunning
	case entrySucceededMsg:
		row := bm.row(msg.entry)
		row.state = stateSucceeded
		row.artifact = msg.artifact
		row.units = msg.units
		row.bytes = msg.bytes
	case entryFailedMsg:
		row := bm.row(msg.entry)
		row.state = stateFailed
		row.details = msg.details
	case buildFinishedMsg:
		bm.finished = true
		return bm, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			bm.finished = true
			return bm, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		bm.spinner, cmd = bm.spinner.Update(msg)

		return bm, cmd
	}

	return bm, nil
}

// row returns the row for entry, appending one for entries not announced at start.
func (bm *buildModel) row(entry m.Path) *entryRow {
	for i := range bm.rows {
		if bm.rows[i].entry == entry {
			return &bm.rows[i]
		}
	}

	bm.rows = append(bm.rows, entryRow{entry: entry})

	return &bm.rows[len(bm.rows)-1]
}

func (bm buildModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("solflat build"))
	b.WriteString("\n\n")

	built, failed := 0, 0

	for _, row := range bm.rows {
		switch row.state {
		case statePending:
			fmt.Fprintf(&b, "  %s %s\n", pendingStyle.Render("·"), pendingStyle.Render(string(row.entry)))
		case stateRunning:
			fmt.Fprintf(&b, "  %s %s\n", bm.spinner.View(), row.entry)
		case stateSucceeded:
			built++

			fmt.Fprintf(&b, "  %s %s %s\n", okStyle.Render("✓"), row.entry,
				detailStyle.Render(fmt.Sprintf("-> %s (%d units, %s)", row.artifact, row.units, formatBytes(row.bytes))))
		case stateFailed:
			failed++

			fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), row.entry)

			for _, detail := range row.details {
				fmt.Fprintf(&b, "      %s\n", indentContinuation(detail, "      "))
			}
		}
	}

	if bm.finished {
		fmt.Fprintf(&b, "\n  %d built, %d failed\n", built, failed)
	}

	return b.String()
}
