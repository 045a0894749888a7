package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"solflat.dev/pkg/solflat/internal/domain"
)

// loadConstants merges the constants file (if any) with -D overrides. Overrides win.
func loadConstants(file string, defines []string) (map[string]string, error) {
	constants := map[string]string{}

	if strings.TrimSpace(file) != "" {
		fromFile, err := readConstantsFile(file)
		if err != nil {
			return nil, err
		}

		for name, value := range fromFile {
			constants[name] = value
		}
	}

	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("invalid constant override %q, want NAME=VALUE", define)
		}

		constants[name] = value
	}

	for name, value := range constants {
		if err := domain.ValidateConstantValue(name, value); err != nil {
			return nil, err
		}
	}

	return constants, nil
}

// readConstantsFile reads a flat YAML mapping of constant names to values. Values are
// taken verbatim as written so `0x10` stays `0x10`.
func readConstantsFile(file string) (map[string]string, error) {
	// #nosec G304 - the path comes from the user's own configuration
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read constants file: %w", err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return map[string]string{}, nil
	}

	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(content, &nodes); err != nil {
		return nil, fmt.Errorf("parse constants file %s: %w", file, err)
	}

	constants := make(map[string]string, len(nodes))

	for name, node := range nodes {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("constants file %s: value of %s must be a scalar", file, name)
		}

		constants[name] = node.Value
	}

	return constants, nil
}
