package audio

import (
	"encoding/binary"
	"math"
)

// SampleRate is the sample rate every generated buffer uses
const SampleRate = 44100

const (
	bytesPerFrame = 4 // 16-bit stereo
	// fade is the attack and release length of a note, in seconds
	fade = 0.01
)

// Note is a single tone. A zero Freq is a rest.
type Note struct {
	Freq     float64
	Duration float64 // seconds
}

// Tone synthesizes sine notes into 16-bit little-endian stereo PCM
type Tone struct {
	SampleRate int
	Volume     float64 // 0..1
}

// NewTone creates a tone generator at SampleRate and half volume
func NewTone() *Tone {
	return &Tone{SampleRate: SampleRate, Volume: 0.5}
}

// Frames returns the number of frames a note occupies
func (t *Tone) Frames(n Note) int {
	return int(math.Round(n.Duration * float64(t.SampleRate)))
}

// Generate renders the notes back to back
func (t *Tone) Generate(notes []Note) []byte {
	total := 0
	for _, n := range notes {
		total += t.Frames(n)
	}
	buf := make([]byte, total*bytesPerFrame)

	off := 0
	for _, n := range notes {
		frames := t.Frames(n)
		if n.Freq > 0 {
			t.writeNote(buf[off:off+frames*bytesPerFrame], n.Freq, frames)
		}
		off += frames * bytesPerFrame
	}
	return buf
}

func (t *Tone) writeNote(dst []byte, freq float64, frames int) {
	rate := float64(t.SampleRate)
	ramp := fade * rate
	for i := 0; i < frames; i++ {
		env := 1.0
		if f := float64(i); f < ramp {
			env = f / ramp
		}
		if f := float64(frames - 1 - i); f < ramp {
			env = math.Min(env, f/ramp)
		}
		v := math.Sin(2*math.Pi*freq*float64(i)/rate) * env * t.Volume
		s := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(dst[i*bytesPerFrame:], uint16(s))
		binary.LittleEndian.PutUint16(dst[i*bytesPerFrame+2:], uint16(s))
	}
}

// Melody is a short intro phrase and a loop body for menu music
func Melody() (intro, loop []Note) {
	const (
		c4 = 261.63
		e4 = 329.63
		g4 = 392.00
		a4 = 440.00
		c5 = 523.25
	)
	intro = []Note{{c4, 0.2}, {e4, 0.2}, {g4, 0.2}, {c5, 0.4}, {0, 0.2}}
	loop = []Note{
		{c4, 0.4}, {g4, 0.4}, {a4, 0.4}, {g4, 0.4},
		{e4, 0.4}, {g4, 0.4}, {c4, 0.4}, {0, 0.4},
	}
	return intro, loop
}
