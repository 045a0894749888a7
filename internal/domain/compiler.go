package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"solflat.dev/pkg/solflat/internal/adapter"
	m "solflat.dev/pkg/solflat/internal/model"
)

// abiSchema describes the contract interface JSON the compiler emits. Entries
// without a type are functions.
const abiSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "type": {"enum": ["function", "constructor", "fallback", "receive", "event", "error"]},
      "name": {"type": "string"},
      "inputs": {"type": "array", "items": {"$ref": "#/definitions/param"}},
      "outputs": {"type": "array", "items": {"$ref": "#/definitions/param"}},
      "stateMutability": {"enum": ["pure", "view", "nonpayable", "payable"]},
      "constant": {"type": "boolean"},
      "payable": {"type": "boolean"},
      "anonymous": {"type": "boolean"}
    }
  },
  "definitions": {
    "param": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "name": {"type": "string"},
        "type": {"type": "string"},
        "internalType": {"type": "string"},
        "indexed": {"type": "boolean"},
        "components": {"type": "array", "items": {"$ref": "#/definitions/param"}}
      }
    }
  }
}`

var abiSchemaLoader = gojsonschema.NewStringLoader(abiSchema)

// Invoker submits flattened text to the external compiler and normalizes the result.
type Invoker interface {
	// Compile returns the compiled units, or a *model.CompileFailure holding every
	// error the compiler reported. Positions in a CompileFailure still index the
	// submitted text; see Remapper.
	Compile(ctx context.Context, text string) (m.UnitTable, error)
}

type invoker struct {
	compiler adapter.CompilerAdapter
	optimize bool
}

// NewInvoker constructs an Invoker running compiler with the given optimize flag.
func NewInvoker(compiler adapter.CompilerAdapter, optimize bool) Invoker {
	return &invoker{compiler: compiler, optimize: optimize}
}

func (i *invoker) Compile(ctx context.Context, text string) (m.UnitTable, error) {
	out, err := i.compiler.Compile(ctx, text, i.optimize)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	for _, warning := range out.Warnings {
		slog.Warn("compiler warning", "message", warning)
	}

	if len(out.Errors) > 0 {
		return nil, &m.CompileFailure{Errors: parseCompileErrors(out.Errors)}
	}

	units := make(m.UnitTable, len(out.Contracts))

	for rawName, contract := range out.Contracts {
		name := unitName(rawName)

		unit, err := normalizeUnit(name, contract)
		if err != nil {
			return nil, err
		}

		units[name] = unit
	}

	slog.Debug("compiled units", "count", len(units))

	return units, nil
}

// unitName strips the namespace prefix (`<stdin>:`, or a bare leading `:`).
func unitName(raw string) string {
	return raw[strings.LastIndex(raw, ":")+1:]
}

func normalizeUnit(name string, contract adapter.RawContract) (m.CompiledUnit, error) {
	text, err := interfaceText(contract.Interface)
	if err != nil {
		return m.CompiledUnit{}, fmt.Errorf("unit %s: interface: %w", name, err)
	}

	abi, err := parseInterface(text)
	if err != nil {
		return m.CompiledUnit{}, fmt.Errorf("unit %s: interface: %w", name, err)
	}

	return m.CompiledUnit{
		Name:         name,
		Interface:    abi,
		RawInterface: text,
		Bytecode:     contract.Bytecode,
	}, nil
}

// interfaceText accepts both encodings solc has used for the ABI: a JSON string
// containing the array, or the array inline.
func interfaceText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "[]", nil
	}

	if trimmed[0] != '"' {
		return string(trimmed), nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return "", err
	}

	return text, nil
}

func parseInterface(text string) ([]m.ABIEntry, error) {
	result, err := gojsonschema.Validate(abiSchemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil {
		return nil, err
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			problems = append(problems, verr.String())
		}

		return nil, fmt.Errorf("invalid ABI: %s", strings.Join(problems, "; "))
	}

	var abi []m.ABIEntry
	if err := json.Unmarshal([]byte(text), &abi); err != nil {
		return nil, err
	}

	for idx := range abi {
		if abi[idx].Type == "" {
			abi[idx].Type = "function"
		}
	}

	return abi, nil
}

func parseCompileErrors(messages []string) []*m.CompileError {
	errs := make([]*m.CompileError, 0, len(messages))

	for _, message := range messages {
		ce := &m.CompileError{Message: message}

		if pos, ok := matchErrorPosition(message); ok {
			ce.RawLine = pos.line
			ce.RawColumn = pos.column
			ce.PositionSpan = pos.span
		}

		errs = append(errs, ce)
	}

	return errs
}
