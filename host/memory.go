package host

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/structpack/errors"
)

// Memory is the guest linear memory surface the host functions read from
// and write to. It exists so function bodies can be exercised against an
// in-process implementation without instantiating a guest.
type Memory interface {
	Read(offset, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// WazeroMemory adapts api.Memory to the Memory interface.
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory wraps a wazero module's linear memory.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

func (m *WazeroMemory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(offset, uint32(len(data)))
	}
	return nil
}

var _ Memory = (*WazeroMemory)(nil)
