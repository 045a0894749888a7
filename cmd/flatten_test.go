package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solflat.dev/pkg/solflat/internal/domain"
	domainmocks "solflat.dev/pkg/solflat/internal/domain/mocks"
	m "solflat.dev/pkg/solflat/internal/model"
)

func runFlattenCmd(t *testing.T, args ...string) error {
	t.Helper()
	useTempLog(t)

	cmd := newRootCmd()
	cmd.AddCommand(newFlattenCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"flatten"}, args...))

	return cmd.Execute()
}

func TestFlattenCmd_Stdout(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useMockWorkflow(t, mockWorkflow)

	mockWorkflow.On("Flatten", mock.Anything, mock.MatchedBy(func(args domain.FlattenArgs) bool {
		return args.Entry == m.Path("contracts/Token.sol") &&
			args.Output == "" &&
			!args.ShowDiff &&
			args.Constants["RATE"] == "7"
	})).Return(nil)

	err := runFlattenCmd(t, "-D", "RATE=7", "contracts/Token.sol")
	require.NoError(t, err)
}

func TestFlattenCmd_OutputAndDiff(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useMockWorkflow(t, mockWorkflow)

	mockWorkflow.On("Flatten", mock.Anything, mock.MatchedBy(func(args domain.FlattenArgs) bool {
		return args.Output == m.Path("Token.flat.sol") && args.ShowDiff
	})).Return(nil)

	err := runFlattenCmd(t, "--output", "Token.flat.sol", "--diff", "contracts/Token.sol")
	require.NoError(t, err)
}

func TestFlattenCmd_ExactlyOneEntry(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useMockWorkflow(t, mockWorkflow)

	require.Error(t, runFlattenCmd(t))
	require.Error(t, runFlattenCmd(t, "a.sol", "b.sol"))

	mockWorkflow.AssertNotCalled(t, "Flatten", mock.Anything, mock.Anything)
}
