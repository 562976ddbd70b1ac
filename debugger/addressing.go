package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rc3200/cda/hardware/memory"
)

type mappedAddress struct {
	address uint32
	area    memory.Area
}

// hex values can be prefixed with either $ or 0x
func parseNumber(s string, bitSize int) (uint64, error) {
	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	return strconv.ParseUint(s, 0, bitSize)
}

func (m *debugger) parseAddress(address string) (mappedAddress, error) {
	var ma mappedAddress

	addr, err := parseNumber(address, 32)
	if err != nil {
		return ma, fmt.Errorf("address is not valid: %s", address)
	}
	ma.address = uint32(addr)

	ma.area = m.console.Mem.MapAddress(ma.address)
	if ma.area == nil {
		return ma, fmt.Errorf("address is not mapped: %s", address)
	}

	return ma, nil
}

func parseValue(value string) (uint8, error) {
	v, err := parseNumber(value, 8)
	if err != nil {
		return 0, fmt.Errorf("value is not valid: %s", value)
	}
	return uint8(v), nil
}

// parse ON or OFF arguments. any other value is an error
func parseSwitch(arg string) (bool, error) {
	switch strings.ToUpper(arg) {
	case "ON", "TRUE":
		return true, nil
	case "OFF", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("expected ON or OFF: %s", arg)
}
