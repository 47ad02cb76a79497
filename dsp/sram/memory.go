package sram

// Memory is an in-process SRAM. Transfers never block and are lossless
// unless a failure has been injected.
type Memory struct {
	data      []byte
	transfers int
	failAfter int
	failing   bool
}

// NewMemory returns a zeroed device of size bytes.
func NewMemory(size int) *Memory {
	return &Memory{
		data:      make([]byte, min(max(size, 0), AddressSpace)),
		failAfter: -1,
	}
}

// Size returns the device capacity in bytes.
func (m *Memory) Size() int { return len(m.data) }

// Transfers returns the number of transfers attempted so far.
func (m *Memory) Transfers() int { return m.transfers }

// Fail makes every following transfer fail (on) or succeed (off). It
// cancels a pending FailAfter.
func (m *Memory) Fail(on bool) {
	m.failing = on
	m.failAfter = -1
}

// FailAfter lets n more transfers succeed and fails every one after that.
func (m *Memory) FailAfter(n int) {
	m.failing = false
	m.failAfter = max(n, 0)
}

// Transfer implements Transport.
func (m *Memory) Transfer(cmd Command, addr uint32, payload []byte) error {
	m.transfers++
	if m.failAfter == 0 {
		m.failing = true
		m.failAfter = -1
	}
	if m.failAfter > 0 {
		m.failAfter--
	}
	if m.failing {
		return ErrInjected
	}
	if err := checkCommand(cmd); err != nil {
		return err
	}
	if err := checkRange(addr, len(payload), len(m.data)); err != nil {
		return err
	}
	if cmd == CmdWrite {
		copy(m.data[addr:], payload)
	} else {
		copy(payload, m.data[addr:])
	}
	return nil
}
