package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "solflat.dev/pkg/solflat/internal/model"
)

// ArtifactFormat selects how compiled units are written to disk.
type ArtifactFormat string

const (
	// FormatJS writes CommonJS `exports.<Name>Abi` / `exports.<Name>ByteCode` bindings.
	FormatJS ArtifactFormat = "js"
	// FormatYAML writes a YAML mapping of unit name to abi and bytecode.
	FormatYAML ArtifactFormat = "yaml"
)

const generatedHeader = "This is an autogenerated file. DO NOT EDIT MANUALLY"

// ParseArtifactFormat validates a format name.
func ParseArtifactFormat(value string) (ArtifactFormat, error) {
	switch ArtifactFormat(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJS, "":
		return FormatJS, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown artifact format %q (want js or yaml)", value)
}

// Extension returns the file extension for the format, including the dot.
func (f ArtifactFormat) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}

	return ".js"
}

// ArtifactStore renders compiled units and writes them out.
type ArtifactStore interface {
	Render(units m.UnitTable, format ArtifactFormat) ([]byte, error)
	Save(path m.Path, units m.UnitTable, format ArtifactFormat) error
}

// LocalArtifactStore writes artifacts through a SourceFSAdapter.
type LocalArtifactStore struct {
	fs SourceFSAdapter
}

// NewLocalArtifactStore constructs a LocalArtifactStore.
func NewLocalArtifactStore(fs SourceFSAdapter) *LocalArtifactStore {
	return &LocalArtifactStore{fs: fs}
}

// Save renders units and writes them atomically to path.
func (s *LocalArtifactStore) Save(path m.Path, units m.UnitTable, format ArtifactFormat) error {
	content, err := s.Render(units, format)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}

	return nil
}

// Render serializes units in the requested format, sorted by unit name.
func (s *LocalArtifactStore) Render(units m.UnitTable, format ArtifactFormat) ([]byte, error) {
	switch format {
	case FormatJS, "":
		return renderJS(units)
	case FormatYAML:
		return renderYAML(units)
	}

	return nil, fmt.Errorf("unknown artifact format %q", format)
}

func renderJS(units m.UnitTable) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString("/* " + generatedHeader + " */\n\n")

	for _, name := range units.Names() {
		unit := units[name]

		abi, err := compactInterface(unit)
		if err != nil {
			return nil, fmt.Errorf("render %s interface: %w", name, err)
		}

		fmt.Fprintf(&b, "exports.%sAbi = %s;\n", name, abi)
		fmt.Fprintf(&b, "exports.%sByteCode = \"0x%s\";\n", name, unit.Bytecode)
	}

	return b.Bytes(), nil
}

func compactInterface(unit m.CompiledUnit) (string, error) {
	if strings.TrimSpace(unit.RawInterface) == "" {
		encoded, err := json.Marshal(unit.Interface)
		if err != nil {
			return "", err
		}

		return string(encoded), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(unit.RawInterface)); err != nil {
		return "", err
	}

	return buf.String(), nil
}

type yamlArtifactEntry struct {
	ABI      []m.ABIEntry `yaml:"abi"`
	Bytecode string       `yaml:"bytecode"`
}

func renderYAML(units m.UnitTable) ([]byte, error) {
	doc := make(map[string]yamlArtifactEntry, len(units))
	for name, unit := range units {
		abi := unit.Interface
		if abi == nil {
			abi = []m.ABIEntry{}
		}

		doc[name] = yamlArtifactEntry{ABI: abi, Bytecode: "0x" + unit.Bytecode}
	}

	var b bytes.Buffer

	b.WriteString("# " + generatedHeader + "\n")

	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// ArtifactPath returns where the artifact for entry is written inside outDir:
// the entry's base name with its extension replaced by the format's.
func ArtifactPath(outDir m.Path, entry m.Path, format ArtifactFormat) m.Path {
	base := filepath.Base(string(entry))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return m.Path(filepath.Join(string(outDir), base+format.Extension()))
}
