package memory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Area is implemented by anything that is placed on the memory bus. Unlike
// the areas of some other emulated systems, an Area is addressed with the
// full bus address and is responsible for checking that the address is inside
// its Window()
type Area interface {
	Label() string
	Window() Region
	Read(address uint32) (uint8, error)
	Write(address uint32, data uint8) error
}

var (
	// Unmapped is returned by the bus when no area covers the address
	Unmapped = errors.New("unmapped address")

	// Overlap is returned by Attach() when an area's window clashes with an
	// area that is already attached
	Overlap = errors.New("overlapping areas")
)

// Memory is the RC3200 memory bus. Areas are attached to the bus and accesses
// are dispatched to the area whose window contains the address
type Memory struct {
	// sorted by Window().Begin
	areas []Area
}

// NewMemory is the preferred method of initialisation for the Memory type
func NewMemory() *Memory {
	return &Memory{}
}

// Attach areas to the bus. No area is attached if any of the windows overlap
// with an area already on the bus, or with each other
func (mem *Memory) Attach(areas ...Area) error {
	n := append([]Area{}, mem.areas...)

	for _, a := range areas {
		w := a.Window()
		if w.Size == 0 {
			return fmt.Errorf("memory: %s: zero sized window", a.Label())
		}
		for _, b := range n {
			if w.Overlaps(b.Window()) {
				return fmt.Errorf("memory: %w: %s (%s) and %s (%s)", Overlap,
					a.Label(), w, b.Label(), b.Window())
			}
		}
		n = append(n, a)
	}

	sort.Slice(n, func(i, j int) bool {
		return n[i].Window().Begin < n[j].Window().Begin
	})
	mem.areas = n

	return nil
}

// Detach removes all areas from the bus
func (mem *Memory) Detach() {
	mem.areas = mem.areas[:0]
}

// Areas returns the attached areas in address order
func (mem *Memory) Areas() []Area {
	return append([]Area{}, mem.areas...)
}

// MapAddress returns the area that covers the address. It is possible for a
// nil Area to be returned
func (mem *Memory) MapAddress(address uint32) Area {
	i := sort.Search(len(mem.areas), func(i int) bool {
		return mem.areas[i].Window().End() > uint64(address)
	})
	if i < len(mem.areas) && mem.areas[i].Window().Contains(address) {
		return mem.areas[i]
	}
	return nil
}

func (mem *Memory) Read(address uint32) (uint8, error) {
	area := mem.MapAddress(address)
	if area == nil {
		return 0, fmt.Errorf("read %08x: %w", address, Unmapped)
	}
	v, err := area.Read(address)
	if err != nil {
		return 0, fmt.Errorf("read %08x: %w", address, err)
	}
	return v, nil
}

func (mem *Memory) Write(address uint32, data uint8) error {
	area := mem.MapAddress(address)
	if area == nil {
		return fmt.Errorf("write %08x: %w", address, Unmapped)
	}
	err := area.Write(address, data)
	if err != nil {
		return fmt.Errorf("write %08x: %w", address, err)
	}
	return nil
}

// Read is a convenience function that reads from an area and wraps any error
// with the area's label
func Read(area Area, address uint32) (uint8, error) {
	v, err := area.Read(address)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", area.Label(), err)
	}
	return v, nil
}

// String returns the memory map of the bus
func (mem *Memory) String() string {
	var s strings.Builder
	s.WriteString("RC3200 Memory Map\n-----------------\n")
	for _, a := range mem.areas {
		s.WriteString(fmt.Sprintf("%s\t%s\n", a.Window(), a.Label()))
	}
	return strings.TrimSuffix(s.String(), "\n")
}
