package memory_test

import (
	"errors"
	"testing"

	"github.com/rc3200/cda/hardware/memory"
	"github.com/rc3200/cda/hardware/memory/ram"
	"github.com/rc3200/cda/test"
)

func TestRegion(t *testing.T) {
	r := memory.Region{Begin: 0xff0a0000, Size: 0x4400}

	test.ExpectSuccess(t, r.Contains(0xff0a0000))
	test.ExpectSuccess(t, r.Contains(0xff0a43ff))
	test.ExpectFailure(t, r.Contains(0xff09ffff))
	test.ExpectFailure(t, r.Contains(0xff0a4400))

	idx, err := r.Index(0xff0a0010)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, idx, uint32(0x10))

	_, err = r.Index(0xff0a4400)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))
}

func TestRegionTopOfAddressSpace(t *testing.T) {
	r := memory.Region{Begin: 0xffffff00, Size: 0x100}
	test.ExpectSuccess(t, r.Contains(0xffffffff))
	test.ExpectEquality(t, r.End(), uint64(0x100000000))
	test.ExpectEquality(t, r.String(), "ffffff00 -> ffffffff")
}

func TestRegionOverlaps(t *testing.T) {
	a := memory.Region{Begin: 0x100, Size: 0x100}
	test.ExpectSuccess(t, a.Overlaps(memory.Region{Begin: 0x1ff, Size: 1}))
	test.ExpectSuccess(t, a.Overlaps(memory.Region{Begin: 0x000, Size: 0x101}))
	test.ExpectFailure(t, a.Overlaps(memory.Region{Begin: 0x200, Size: 1}))
	test.ExpectFailure(t, a.Overlaps(memory.Region{Begin: 0x000, Size: 0x100}))
}

func TestBus(t *testing.T) {
	mem := memory.NewMemory()
	lo := ram.Create(nil, "lo", 0x0000, 0x100)
	hi := ram.Create(nil, "hi", 0x8000, 0x100)
	test.DemandSuccess(t, mem.Attach(hi, lo))

	test.ExpectEquality(t, mem.MapAddress(0x0010), memory.Area(lo))
	test.ExpectEquality(t, mem.MapAddress(0x80ff), memory.Area(hi))
	test.ExpectEquality(t, mem.MapAddress(0x0100), nil)
	test.ExpectEquality(t, mem.MapAddress(0x7fff), nil)
	test.ExpectEquality(t, mem.MapAddress(0x8100), nil)

	test.ExpectSuccess(t, mem.Write(0x8001, 0x42))
	v, err := mem.Read(0x8001)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x42))

	_, err = mem.Read(0x4000)
	test.ExpectSuccess(t, errors.Is(err, memory.Unmapped))
	err = mem.Write(0x4000, 0x00)
	test.ExpectSuccess(t, errors.Is(err, memory.Unmapped))

	areas := mem.Areas()
	test.DemandEquality(t, len(areas), 2)
	test.ExpectEquality(t, areas[0].Label(), "lo")
	test.ExpectEquality(t, areas[1].Label(), "hi")

	// nothing is mapped after the areas are detached
	mem.Detach()
	test.ExpectEquality(t, len(mem.Areas()), 0)
	_, err = mem.Read(0x8001)
	test.ExpectSuccess(t, errors.Is(err, memory.Unmapped))
}

func TestBusOverlap(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Attach(ram.Create(nil, "a", 0x0000, 0x100)))

	err := mem.Attach(ram.Create(nil, "b", 0x0080, 0x100))
	test.ExpectSuccess(t, errors.Is(err, memory.Overlap))

	// overlapping areas in the same call are also rejected and nothing is
	// attached
	err = mem.Attach(
		ram.Create(nil, "c", 0x1000, 0x100),
		ram.Create(nil, "d", 0x10ff, 0x100),
	)
	test.ExpectSuccess(t, errors.Is(err, memory.Overlap))
	test.ExpectEquality(t, len(mem.Areas()), 1)

	err = mem.Attach(ram.Create(nil, "zero", 0x2000, 0))
	test.ExpectFailure(t, err)
}

func TestReadHelper(t *testing.T) {
	r := ram.Create(nil, "vram", 0x100, 0x10)
	_, err := memory.Read(r, 0x200)
	test.ExpectSuccess(t, errors.Is(err, memory.OutOfRange))
	test.ExpectEquality(t, err.Error(), "vram: address out of range: 00000200 not in 00000100 -> 0000010f")
}

func TestMemoryMap(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Attach(ram.Create(nil, "vram", 0xff0a0000, 0x4400)))
	test.ExpectEquality(t, mem.String(), "RC3200 Memory Map\n-----------------\nff0a0000 -> ff0a43ff\tvram")
}
