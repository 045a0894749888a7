package domain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solflat.dev/pkg/solflat/internal/adapter"
	adaptermocks "solflat.dev/pkg/solflat/internal/adapter/mocks"
	controllermocks "solflat.dev/pkg/solflat/internal/controller/mocks"
	m "solflat.dev/pkg/solflat/internal/model"
)

func newTestWorkflow(t *testing.T, compiler adapter.CompilerAdapter, ui *controllermocks.MockUI) Workflow {
	t.Helper()

	fs := adapter.NewLocalSourceFSAdapter()

	return NewWorkflow(
		fs,
		adapter.NewLocalArtifactStore(fs),
		ui,
		NewResolver(fs),
		NewInjector(),
		NewInvoker(compiler, true),
		NewRemapper(),
	)
}

func tokenOutput() adapter.CompilerOutput {
	return adapter.CompilerOutput{
		Contracts: map[string]adapter.RawContract{
			"<stdin>:Top": {Interface: []byte(`[]`), Bytecode: "6060"},
		},
	}
}

func TestWorkflow_BuildWritesArtifact(t *testing.T) {
	root := writeProject(t)
	outDir := filepath.Join(root, "build")
	entry := m.Path(filepath.Join(root, "top.sol"))

	compiler := adaptermocks.NewMockCompilerAdapter(t)
	compiler.On("Compile", mock.Anything, mock.MatchedBy(func(src string) bool {
		return strings.Contains(src, "uint constant RATE = 7;") && strings.Contains(src, "contract Top is Mid {}")
	}), true).Return(tokenOutput(), nil)

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, entry).Return()
	ui.On("DisplayBuildSucceeded", mock.Anything, entry, m.Path(filepath.Join(outDir, "top.js")), mock.MatchedBy(func(units m.UnitTable) bool {
		return len(units) == 1 && units["Top"].Bytecode == "6060"
	})).Return()
	ui.On("Close", mock.Anything).Return()

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries:   []m.Path{entry},
		OutDir:    m.Path(outDir),
		Format:    adapter.FormatJS,
		Constants: map[string]string{"RATE": "7"},
		Threads:   1,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "top.js"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "exports.TopAbi = [];")
	assert.Contains(t, string(content), `exports.TopByteCode = "0x6060";`)
}

func TestWorkflow_BuildRemapsCompileErrors(t *testing.T) {
	root := writeProject(t)
	entry := m.Path(filepath.Join(root, "top.sol"))

	compiler := adaptermocks.NewMockCompilerAdapter(t)
	compiler.On("Compile", mock.Anything, mock.Anything, true).Return(adapter.CompilerOutput{
		Errors: []string{"<stdin>:12:17: TypeError: Definition of base has to precede definition of derived contract"},
	}, nil)

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, entry).Return()
	ui.On("DisplayCompileErrors", mock.Anything, entry, mock.MatchedBy(func(errs []*m.CompileError) bool {
		return len(errs) == 1 &&
			errs[0].Resolved &&
			errs[0].File == m.Path(filepath.Join(root, "top.sol")) &&
			errs[0].Line == 3 &&
			errs[0].Column == 17
	})).Return()
	ui.On("Close", mock.Anything).Return()

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries: []m.Path{entry},
		OutDir:  m.Path(filepath.Join(root, "build")),
		Format:  adapter.FormatJS,
	})

	var failure *m.CompileFailure
	require.True(t, errors.As(err, &failure))
	assert.Contains(t, err.Error(), filepath.Join(root, "top.sol")+":3:17:")

	_, statErr := os.Stat(filepath.Join(root, "build", "top.js"))
	assert.True(t, os.IsNotExist(statErr), "no artifact is written for a failed entry")
}

func TestWorkflow_BuildContinuesPastFailedEntry(t *testing.T) {
	root := writeProject(t)
	outDir := filepath.Join(root, "build")
	missing := m.Path(filepath.Join(root, "missing.sol"))
	entry := m.Path(filepath.Join(root, "top.sol"))

	compiler := adaptermocks.NewMockCompilerAdapter(t)
	compiler.On("Compile", mock.Anything, mock.Anything, true).Return(tokenOutput(), nil)

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, mock.Anything).Return()
	ui.On("DisplayBuildFailed", mock.Anything, missing, mock.Anything).Return()
	ui.On("DisplayBuildSucceeded", mock.Anything, entry, mock.Anything, mock.Anything).Return()
	ui.On("Close", mock.Anything).Return()

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries: []m.Path{missing, entry},
		OutDir:  m.Path(outDir),
		Format:  adapter.FormatYAML,
		Threads: 2,
	})

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Contains(t, err.Error(), "missing.sol")

	_, statErr := os.Stat(filepath.Join(outDir, "top.yaml"))
	assert.NoError(t, statErr)
}

func TestWorkflow_BuildEntriesAreIndependent(t *testing.T) {
	root := writeProject(t)
	outDir := filepath.Join(root, "build")
	entries := []m.Path{m.Path(filepath.Join(root, "mid.sol")), m.Path(filepath.Join(root, "top.sol"))}

	var sources []string

	compiler := adaptermocks.NewMockCompilerAdapter(t)
	compiler.On("Compile", mock.Anything, mock.Anything, true).Run(func(args mock.Arguments) {
		sources = append(sources, args.String(1))
	}).Return(tokenOutput(), nil)

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, mock.Anything).Return()
	ui.On("DisplayBuildSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	ui.On("Close", mock.Anything).Return()

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries: entries,
		OutDir:  m.Path(outDir),
		Format:  adapter.FormatJS,
		Threads: 1,
	})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	for _, src := range sources {
		assert.Equal(t, 1, strings.Count(src, "contract Base {"), "each entry carries its own copy of base")
	}
}

func TestWorkflow_BuildRejectsCollidingArtifacts(t *testing.T) {
	root := t.TempDir()
	first := m.Path(filepath.Join(root, "a", "Token.sol"))
	second := m.Path(filepath.Join(root, "b", "Token.sol"))
	writeFile(t, string(first), "contract TokenA {}\n")
	writeFile(t, string(second), "contract TokenB {}\n")
	outDir := filepath.Join(root, "build")

	ui := controllermocks.NewMockUI(t)
	compiler := adaptermocks.NewMockCompilerAdapter(t)

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries: []m.Path{first, second},
		OutDir:  m.Path(outDir),
		Format:  adapter.FormatJS,
		Threads: 2,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(first))
	assert.Contains(t, err.Error(), string(second))
	assert.Contains(t, err.Error(), filepath.Join(outDir, "Token.js"))

	_, statErr := os.Stat(filepath.Join(outDir, "Token.js"))
	assert.True(t, os.IsNotExist(statErr))

	ui.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
	compiler.AssertNotCalled(t, "Compile", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_BuildRejectsRepeatedEntry(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	compiler := adaptermocks.NewMockCompilerAdapter(t)

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{
		Entries: []m.Path{"contracts/Token.sol", "contracts/Token.sol"},
		OutDir:  "build",
		Format:  adapter.FormatJS,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestWorkflow_BuildWithoutEntries(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	compiler := adaptermocks.NewMockCompilerAdapter(t)

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{})
	require.Error(t, err)
}

func TestWorkflow_BuildStartFailure(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	compiler := adaptermocks.NewMockCompilerAdapter(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(errors.New("no terminal"))

	err := newTestWorkflow(t, compiler, ui).Build(context.Background(), BuildArgs{Entries: []m.Path{"a.sol"}})
	require.EqualError(t, err, "no terminal")
}

func TestWorkflow_FlattenDisplaysText(t *testing.T) {
	root := writeProject(t)

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayFlattened", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "//File: "+filepath.Join(root, "base.sol")) &&
			strings.Contains(text, "uint constant RATE = 3;")
	})).Return(nil)

	err := newTestWorkflow(t, adaptermocks.NewMockCompilerAdapter(t), ui).Flatten(context.Background(), FlattenArgs{
		Entry:     m.Path(filepath.Join(root, "top.sol")),
		Constants: map[string]string{"RATE": "3"},
	})
	require.NoError(t, err)
}

func TestWorkflow_FlattenWritesOutput(t *testing.T) {
	root := writeProject(t)
	output := filepath.Join(root, "out", "Top.flat.sol")

	ui := controllermocks.NewMockUI(t)

	err := newTestWorkflow(t, adaptermocks.NewMockCompilerAdapter(t), ui).Flatten(context.Background(), FlattenArgs{
		Entry:  m.Path(filepath.Join(root, "top.sol")),
		Output: m.Path(output),
	})
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(content, []byte("contract Top is Mid {}\n")))
	assert.Equal(t, 3, bytes.Count(content, []byte("//File: ")))
}

func TestWorkflow_FlattenShowsDiff(t *testing.T) {
	root := writeProject(t)

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayDiff", mock.Anything, mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "-    uint constant RATE = 1;") &&
			strings.Contains(diff, "+    uint constant RATE = 9;")
	})).Return(nil)

	err := newTestWorkflow(t, adaptermocks.NewMockCompilerAdapter(t), ui).Flatten(context.Background(), FlattenArgs{
		Entry:     m.Path(filepath.Join(root, "top.sol")),
		Constants: map[string]string{"RATE": "9"},
		ShowDiff:  true,
	})
	require.NoError(t, err)
}

func TestWorkflow_FlattenMissingEntry(t *testing.T) {
	ui := controllermocks.NewMockUI(t)

	err := newTestWorkflow(t, adaptermocks.NewMockCompilerAdapter(t), ui).Flatten(context.Background(), FlattenArgs{
		Entry: m.Path(filepath.Join(t.TempDir(), "nope.sol")),
	})

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
}

func TestWorkflow_BuildReportsArtifactFailure(t *testing.T) {
	root := writeProject(t)
	entry := m.Path(filepath.Join(root, "top.sol"))
	artifact := m.Path(filepath.Join(root, "build", "top.yaml"))
	writeErr := errors.New("read-only file system")

	compiler := adaptermocks.NewMockCompilerAdapter(t)
	compiler.On("Compile", mock.Anything, mock.Anything, true).Return(tokenOutput(), nil)

	store := adaptermocks.NewMockArtifactStore(t)
	store.On("Save", artifact, mock.Anything, adapter.FormatYAML).Return(writeErr)

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, entry).Return()
	ui.On("DisplayBuildFailed", mock.Anything, entry, writeErr).Return()
	ui.On("Close", mock.Anything).Return()

	fs := adapter.NewLocalSourceFSAdapter()
	wf := NewWorkflow(fs, store, ui, NewResolver(fs), NewInjector(), NewInvoker(compiler, true), NewRemapper())

	err := wf.Build(context.Background(), BuildArgs{
		Entries: []m.Path{entry},
		OutDir:  m.Path(filepath.Join(root, "build")),
		Format:  adapter.FormatYAML,
	})
	require.ErrorIs(t, err, writeErr)
}

func TestWorkflow_BuildCancelled(t *testing.T) {
	root := writeProject(t)
	entry := m.Path(filepath.Join(root, "top.sol"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("DisplayBuildStarted", mock.Anything, entry).Return()
	ui.On("DisplayBuildFailed", mock.Anything, entry, mock.Anything).Return()
	ui.On("Close", mock.Anything).Return()

	err := newTestWorkflow(t, adaptermocks.NewMockCompilerAdapter(t), ui).Build(ctx, BuildArgs{
		Entries: []m.Path{entry},
		OutDir:  m.Path(filepath.Join(root, "build")),
	})
	require.ErrorIs(t, err, context.Canceled)
}
