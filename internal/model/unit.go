package model

import "sort"

// ABIParam describes one input, output or event field of an ABI entry.
type ABIParam struct {
	Name         string     `json:"name"                   yaml:"name"`
	Type         string     `json:"type"                   yaml:"type"`
	InternalType string     `json:"internalType,omitempty" yaml:"internalType,omitempty"`
	Indexed      bool       `json:"indexed,omitempty"      yaml:"indexed,omitempty"`
	Components   []ABIParam `json:"components,omitempty"   yaml:"components,omitempty"`
}

// ABIEntry is one element of a contract interface description.
type ABIEntry struct {
	Type            string     `json:"type"                      yaml:"type"`
	Name            string     `json:"name,omitempty"            yaml:"name,omitempty"`
	Inputs          []ABIParam `json:"inputs,omitempty"          yaml:"inputs,omitempty"`
	Outputs         []ABIParam `json:"outputs,omitempty"         yaml:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty" yaml:"stateMutability,omitempty"`
	Constant        bool       `json:"constant,omitempty"        yaml:"constant,omitempty"`
	Payable         bool       `json:"payable,omitempty"         yaml:"payable,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"       yaml:"anonymous,omitempty"`
}

// CompiledUnit is one contract produced by the external compiler.
type CompiledUnit struct {
	Name         string     // contract name without namespace prefix
	Interface    []ABIEntry // parsed interface description
	RawInterface string     // interface description exactly as the compiler emitted it
	Bytecode     string     // hex encoded, without 0x prefix
}

// BytecodeSize returns the size of the bytecode in bytes.
func (u CompiledUnit) BytecodeSize() int {
	return len(u.Bytecode) / 2
}

// UnitTable maps contract names to their compiled units.
type UnitTable map[string]CompiledUnit

// Names returns the unit names in lexical order.
func (t UnitTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
