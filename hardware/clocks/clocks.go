package clocks

import (
	"fmt"
	"strconv"
	"strings"
)

const KHz = 1000
const MHz = 1000000

// Clock rates supported by the RC3200
const (
	RC3200_100KHz = 100 * KHz
	RC3200_250KHz = 250 * KHz
	RC3200_500KHz = 500 * KHz
	RC3200_1MHz   = 1 * MHz
)

// Default clock rate of the RC3200
const Default = RC3200_100KHz

// Parse a clock rate. Values can be given as plain integers (in Hz) or with a
// KHz or MHz suffix. For example, "250KHz" and "1MHz"
func Parse(s string) (uint32, error) {
	v := strings.ToUpper(strings.TrimSpace(s))

	mult := uint64(1)
	if n, ok := strings.CutSuffix(v, "MHZ"); ok {
		v = n
		mult = MHz
	} else if n, ok := strings.CutSuffix(v, "KHZ"); ok {
		v = n
		mult = KHz
	} else if n, ok := strings.CutSuffix(v, "HZ"); ok {
		v = n
	}

	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("clocks: not a clock rate: %s", s)
	}

	n *= mult
	if n == 0 || n > 0xffffffff {
		return 0, fmt.Errorf("clocks: clock rate out of range: %s", s)
	}

	return uint32(n), nil
}

// String returns the clock rate using the largest unit that divides it
// exactly
func String(hz uint32) string {
	switch {
	case hz >= MHz && hz%MHz == 0:
		return fmt.Sprintf("%dMHz", hz/MHz)
	case hz >= KHz && hz%KHz == 0:
		return fmt.Sprintf("%dKHz", hz/KHz)
	}
	return fmt.Sprintf("%dHz", hz)
}
