// internal/encoder/bar.go
package encoder

// Fill patterns for the 8-segment bar, one more segment per bin.
var barPatterns = [8]uint8{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF}

// PatternFor clamps lapse into [min, max] and picks the bin whose
// upper threshold min + (max-min)*(i+1)/8 is the first one above it.
func PatternFor(lapse, min, max uint32) uint8 {
	if lapse < min {
		lapse = min
	}
	if lapse > max {
		lapse = max
	}
	span := uint64(max - min)
	for i := 0; i < 7; i++ {
		if uint64(lapse) < uint64(min)+span*uint64(i+1)/8 {
			return barPatterns[i]
		}
	}
	return barPatterns[7]
}
