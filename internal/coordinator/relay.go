package coordinator

import "sync"

// RelayHandle is the transport-neutral interface for delivering
// instructions to whatever glue owns the matchmaking connection. It
// lets the coordinator compute remote calls without depending on any
// transport.
type RelayHandle interface {
	// Deliver hands an instruction to the relay asynchronously.
	// Must be non-blocking; implementations should buffer.
	Deliver(instr Instruction)
}

// ChannelRelay is a RelayHandle backed by a buffered channel. Used by
// the CLI and tests to observe the instruction stream.
type ChannelRelay struct {
	instructions chan Instruction
	done         chan struct{}
	doneOnce     sync.Once
}

// NewChannelRelay creates a channel-backed relay.
// bufferSize controls how many instructions can queue before dropping.
func NewChannelRelay(bufferSize int) *ChannelRelay {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelRelay{
		instructions: make(chan Instruction, bufferSize),
		done:         make(chan struct{}),
	}
}

// Deliver queues an instruction. If the buffer is full the oldest
// instruction is dropped so the coordinator never blocks.
func (r *ChannelRelay) Deliver(instr Instruction) {
	select {
	case <-r.done:
		return
	default:
	}

	select {
	case r.instructions <- instr:
	default:
		select {
		case <-r.instructions:
		default:
		}
		select {
		case r.instructions <- instr:
		default:
		}
	}
}

// Instructions returns the channel the relay glue reads from.
func (r *ChannelRelay) Instructions() <-chan Instruction {
	return r.instructions
}

// Close marks the relay as done. Safe to call multiple times.
func (r *ChannelRelay) Close() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}
