package ram

import (
	"fmt"
	"strings"

	"github.com/rc3200/cda/hardware/memory"
)

// RAM is a plain area of read/write memory. Writing to RAM has no effect
// other than changing the stored value
type RAM struct {
	ctx    Context
	label  string
	window memory.Region
	data   []uint8
}

// Context is used to randomise the contents of RAM on reset
type Context interface {
	Rand8Bit() uint8
}

// Create RAM of the given size with the first byte at origin. The context
// can be nil if the RAM is never reset with random values
func Create(ctx Context, label string, origin uint32, size uint32) *RAM {
	return &RAM{
		ctx:   ctx,
		label: label,
		window: memory.Region{
			Begin: origin,
			Size:  size,
		},
		data: make([]uint8, size),
	}
}

// Reset clears RAM or fills it with random values
func (r *RAM) Reset(random bool) {
	if random && r.ctx != nil {
		for i := range len(r.data) {
			r.data[i] = r.ctx.Rand8Bit()
		}
	} else {
		clear(r.data)
	}
}

func (r *RAM) String() string {
	var s strings.Builder
	for i := 0; i < len(r.data); i += 16 {
		j := min(i+16, len(r.data))
		s.WriteString(fmt.Sprintf("%08x : % 02x\n", r.window.Begin+uint32(i), r.data[i:j]))
	}
	return strings.TrimSuffix(s.String(), "\n")
}

// Label implements the memory.Area interface
func (r *RAM) Label() string {
	return r.label
}

// Window implements the memory.Area interface
func (r *RAM) Window() memory.Region {
	return r.window
}

// Read implements the memory.Area interface
func (r *RAM) Read(address uint32) (uint8, error) {
	idx, err := r.window.Index(address)
	if err != nil {
		return 0, err
	}
	return r.data[idx], nil
}

// Write implements the memory.Area interface
func (r *RAM) Write(address uint32, data uint8) error {
	idx, err := r.window.Index(address)
	if err != nil {
		return err
	}
	r.data[idx] = data
	return nil
}

// Snapshot copies the contents of RAM into dst and returns the number of
// bytes copied
func (r *RAM) Snapshot(dst []uint8) int {
	return copy(dst, r.data)
}

// Fill sets every byte of RAM to v
func (r *RAM) Fill(v uint8) {
	for i := range r.data {
		r.data[i] = v
	}
}
