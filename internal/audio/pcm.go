package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// DecodePCM16 converts signed 16-bit little-endian mono PCM to float samples
// in [-1, 1]. A trailing odd byte is ignored.
func DecodePCM16(pcm []byte) []float32 {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float32(v) / 32768
	}
	return samples
}

// EncodeFloat32LE serializes samples as raw little-endian float32.
func EncodeFloat32LE(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}
	return out
}

// Tone renders a sine beep with short linear fades so it does not click.
func Tone(freq float64, d time.Duration, sampleRate int, gain float32) []float32 {
	n := int(d.Seconds() * float64(sampleRate))
	fade := sampleRate / 100
	samples := make([]float32, n)
	for i := range samples {
		env := float32(1)
		if i < fade {
			env = float32(i) / float32(fade)
		} else if n-i < fade {
			env = float32(n-i) / float32(fade)
		}
		phase := 2 * math.Pi * freq * float64(i) / float64(sampleRate)
		samples[i] = gain * env * float32(math.Sin(phase))
	}
	return samples
}

// AlertTone is the two-note chime played on every reminder.
func AlertTone(sampleRate int) []float32 {
	first := Tone(880, 250*time.Millisecond, sampleRate, 0.6)
	gap := make([]float32, sampleRate/20)
	second := Tone(1320, 400*time.Millisecond, sampleRate, 0.6)

	out := make([]float32, 0, len(first)+len(gap)+len(second))
	out = append(out, first...)
	out = append(out, gap...)
	return append(out, second...)
}
