package sound

import (
	"encoding/binary"
	"math"
)

// Render mixes tones into mono signed 16-bit little-endian PCM.
// Sample 0 corresponds to clock time origin.
func Render(tones []Tone, origin float64, sampleRate int) []byte {
	_, stop := Span(tones)
	if stop <= origin || sampleRate <= 0 {
		return nil
	}

	n := int(math.Ceil((stop - origin) * float64(sampleRate)))
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		at := origin + float64(i)/float64(sampleRate)
		var mix float64
		for _, t := range tones {
			mix += t.Sample(at)
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(toInt16(mix)))
	}
	return buf
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
