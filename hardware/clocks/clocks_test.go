package clocks_test

import (
	"testing"

	"github.com/rc3200/cda/hardware/clocks"
	"github.com/rc3200/cda/test"
)

func TestParse(t *testing.T) {
	for _, c := range []struct {
		s  string
		hz uint32
	}{
		{"100KHz", clocks.RC3200_100KHz},
		{"250khz", clocks.RC3200_250KHz},
		{" 500KHZ ", clocks.RC3200_500KHz},
		{"1MHz", clocks.RC3200_1MHz},
		{"360000", 360000},
		{"360000Hz", 360000},
	} {
		hz, err := clocks.Parse(c.s)
		test.ExpectSuccess(t, err, c.s)
		test.ExpectEquality(t, hz, c.hz, c.s)
	}

	for _, s := range []string{"", "fast", "0", "-1", "5000MHz"} {
		_, err := clocks.Parse(s)
		test.ExpectFailure(t, err, s)
	}
}

func TestString(t *testing.T) {
	test.ExpectEquality(t, clocks.String(clocks.RC3200_1MHz), "1MHz")
	test.ExpectEquality(t, clocks.String(clocks.RC3200_250KHz), "250KHz")
	test.ExpectEquality(t, clocks.String(1500000), "1500KHz")
	test.ExpectEquality(t, clocks.String(360001), "360001Hz")
}
