package debugger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rc3200/cda/hardware/memory"
)

type watch struct {
	ma   mappedAddress
	data uint8
	prev uint8
}

func (w watch) String() string {
	return fmt.Sprintf("%08x = %02x -> %02x (%s)", w.ma.address, w.prev, w.data, w.ma.area.Label())
}

// watched addresses in ascending order
func (m *debugger) watchedAddresses() []uint32 {
	addresses := make([]uint32, 0, len(m.watches))
	for a := range m.watches {
		addresses = append(addresses, a)
	}
	slices.Sort(addresses)
	return addresses
}

// checkWatches updates every watch and returns those with a changed value in
// address order
func (m *debugger) checkWatches() ([]watch, error) {
	var changed []watch
	for _, a := range m.watchedAddresses() {
		w := m.watches[a]
		d, err := memory.Read(w.ma.area, w.ma.address)
		if err != nil {
			return changed, fmt.Errorf("watch: %w", err)
		}
		if d != w.data {
			w.prev = w.data
			w.data = d
			m.watches[a] = w
			changed = append(changed, w)
		}
	}
	return changed, nil
}

func watchSummary(changed []watch) string {
	s := make([]string, len(changed))
	for i, w := range changed {
		s[i] = w.String()
	}
	return strings.Join(s, "\n")
}
