// internal/telemetry/encode.go
package telemetry

// Encode converts a Snapshot into a full rover status block.
// Layout is wire-locked.
// No IO. No side effects.
func Encode(s Snapshot, nameRegs []uint16) []uint16 {
	regs := make([]uint16, SlotsPerRover)

	fillLive(regs, s)

	// Slots 7..(name start - 1) are RESERVED and stay zero.

	// The rover name always lives at the end of the block.
	for i := 0; i < SlotNameSlots; i++ {
		if i < len(nameRegs) {
			regs[SlotNameStart+i] = nameRegs[i]
		}
	}

	return regs
}

func fillLive(regs []uint16, s Snapshot) {
	regs[SlotHealthCode] = s.Health
	regs[SlotLogicState] = s.LogicState
	regs[SlotLastCommand] = s.LastCommand
	regs[SlotRPMx100] = s.RPMx100
	regs[SlotAvgRPMx100] = s.AvgRPMx100
	regs[SlotMorseState] = s.MorseState
	regs[SlotUptimeSec] = s.UptimeSec
}

// EncodeName packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeName(name string) []uint16 {
	out := make([]uint16, SlotNameSlots)

	b := []byte(name)
	if len(b) > NameMaxChars {
		b = b[:NameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < NameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
