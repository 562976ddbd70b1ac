package ram_test

import (
	"errors"
	"testing"

	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/hardware/memory/ram"
	"github.com/rc3200/cda/test"
)

type fixedRand struct{}

func (_ fixedRand) Rand8Bit() uint8 {
	return 0xaa
}

func TestReadWrite(t *testing.T) {
	r := ram.Create(nil, "test", 0x1000, 0x100)
	test.ExpectEquality(t, r.Window(), memory.Region{Begin: 0x1000, Size: 0x100})

	for a := uint32(0x1000); a < 0x1100; a++ {
		test.ExpectSuccess(t, r.Write(a, uint8(a)))
	}
	for a := uint32(0x1000); a < 0x1100; a++ {
		v, err := r.Read(a)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, uint8(a))
	}
}

func TestBounds(t *testing.T) {
	r := ram.Create(nil, "test", 0x1000, 0x100)

	_, err := r.Read(0x0fff)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))
	_, err = r.Read(0x1100)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))

	err = r.Write(0x0fff, 0x01)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))
	err = r.Write(0x1100, 0x01)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))
}

func TestReset(t *testing.T) {
	r := ram.Create(fixedRand{}, "test", 0, 16)
	r.Reset(true)
	v, err := r.Read(15)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xaa))

	r.Reset(false)
	v, err = r.Read(15)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x00))
}

func TestSnapshotAndFill(t *testing.T) {
	r := ram.Create(nil, "test", 0, 32)
	r.Fill(0x5a)

	d := make([]uint8, 40)
	test.ExpectEquality(t, r.Snapshot(d), 32)
	test.ExpectEquality(t, d[31], uint8(0x5a))
	test.ExpectEquality(t, d[32], uint8(0x00))
}

func TestString(t *testing.T) {
	r := ram.Create(nil, "test", 0xff0a0000, 16)
	test.ExpectEquality(t, r.String(), "ff0a0000 : 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00")
}
