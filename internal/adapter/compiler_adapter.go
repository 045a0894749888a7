package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultCompilerTimeout bounds a single compiler invocation.
const DefaultCompilerTimeout = 2 * time.Minute

// RawContract is one contract as emitted by the compiler, before normalization.
type RawContract struct {
	Interface json.RawMessage // either a JSON string holding the ABI or the ABI array itself
	Bytecode  string
}

// CompilerOutput is the raw result of one compiler run. Errors is non-empty exactly
// when the compiler rejected the source.
type CompilerOutput struct {
	Contracts map[string]RawContract
	Errors    []string
	Warnings  []string
}

// CompilerAdapter abstracts the external single-input compiler.
type CompilerAdapter interface {
	// Compile submits the whole source text and returns the compiler's raw output.
	// A non-nil error means the compiler could not be run or its output could not be
	// read; rejected sources are reported through CompilerOutput.Errors instead.
	Compile(ctx context.Context, source string, optimize bool) (CompilerOutput, error)

	// Binary returns the compiler executable this adapter runs.
	Binary() string

	// Version returns the compiler's self-reported version text.
	Version(ctx context.Context) (string, error)
}

// LocalCompilerAdapter runs a solc-compatible executable with os/exec, feeding the
// source on stdin and reading --combined-json output from stdout.
type LocalCompilerAdapter struct {
	binary  string
	timeout time.Duration
}

// NewLocalCompilerAdapter constructs a LocalCompilerAdapter. A zero timeout falls back
// to DefaultCompilerTimeout.
func NewLocalCompilerAdapter(binary string, timeout time.Duration) *LocalCompilerAdapter {
	if timeout <= 0 {
		timeout = DefaultCompilerTimeout
	}

	return &LocalCompilerAdapter{
		binary:  binary,
		timeout: timeout,
	}
}

// Binary returns the configured compiler executable.
func (a *LocalCompilerAdapter) Binary() string {
	return a.binary
}

// Version runs `<binary> --version` and returns its trimmed output.
func (a *LocalCompilerAdapter) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - the compiler binary is configured by the user on purpose
	out, err := exec.CommandContext(ctx, a.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", a.binary, err)
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return "", fmt.Errorf("%s --version printed nothing", a.binary)
	}

	return version, nil
}

// Compile runs `<binary> --combined-json abi,bin [--optimize] -`.
func (a *LocalCompilerAdapter) Compile(ctx context.Context, source string, optimize bool) (CompilerOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	args := []string{"--combined-json", "abi,bin"}
	if optimize {
		args = append(args, "--optimize")
	}

	args = append(args, "-")

	// #nosec G204 - the compiler binary is configured by the user on purpose
	cmd := exec.CommandContext(ctx, a.binary, args...)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return CompilerOutput{}, fmt.Errorf("run %s: %w", a.binary, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return CompilerOutput{}, fmt.Errorf("run %s: %w", a.binary, err)
		}

		messages := splitCompilerMessages(stderr.String())
		if len(messages) == 0 {
			return CompilerOutput{}, fmt.Errorf("%s exited with code %d and no diagnostics", a.binary, exitErr.ExitCode())
		}

		return CompilerOutput{Errors: messages}, nil
	}

	contracts, err := parseCombinedJSON(stdout.Bytes())
	if err != nil {
		return CompilerOutput{}, fmt.Errorf("read %s output: %w", a.binary, err)
	}

	return CompilerOutput{
		Contracts: contracts,
		Warnings:  splitCompilerMessages(stderr.String()),
	}, nil
}

type combinedJSON struct {
	Contracts map[string]struct {
		ABI json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	} `json:"contracts"`
}

func parseCombinedJSON(data []byte) (map[string]RawContract, error) {
	var out combinedJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	contracts := make(map[string]RawContract, len(out.Contracts))
	for name, c := range out.Contracts {
		contracts[name] = RawContract{Interface: c.ABI, Bytecode: c.Bin}
	}

	return contracts, nil
}

// splitCompilerMessages breaks compiler stderr into individual diagnostics. solc
// separates diagnostics with a blank line.
func splitCompilerMessages(stderr string) []string {
	normalized := strings.ReplaceAll(stderr, "\r\n", "\n")

	var messages []string

	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		messages = append(messages, block)
	}

	return messages
}
