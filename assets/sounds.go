package assets

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

var audioContext *audio.Context

// Tone is a synthesized sound cue: a sine sweep from Freq to EndFreq with a
// linear fade out.
type Tone struct {
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Volume   float64
}

// Cue tones for gameplay events.
var (
	BoostTone    = Tone{Freq: 440, EndFreq: 880, Duration: 150 * time.Millisecond, Volume: 0.4}
	TeleportTone = Tone{Freq: 1200, EndFreq: 300, Duration: 120 * time.Millisecond, Volume: 0.35}
	RewindTone   = Tone{Freq: 660, EndFreq: 220, Duration: 400 * time.Millisecond, Volume: 0.35}
	ReadyTone    = Tone{Freq: 990, EndFreq: 990, Duration: 60 * time.Millisecond, Volume: 0.25}
	LandingTone  = Tone{Freq: 90, EndFreq: 50, Duration: 200 * time.Millisecond, Volume: 0.6}
	DeathTone    = Tone{Freq: 300, EndFreq: 40, Duration: 900 * time.Millisecond, Volume: 0.5}
)

// PCM renders the tone as 16-bit little-endian stereo at rate.
func (t Tone) PCM(rate int) []byte {
	n := int(t.Duration.Seconds() * float64(rate))
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq + (t.EndFreq-t.Freq)*progress
		phase += 2 * math.Pi * freq / float64(rate)
		v := int16(math.Sin(phase) * t.Volume * (1 - progress) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

// NewCuePlayer creates an audio player for a tone, creating the shared audio
// context on first use.
func NewCuePlayer(t Tone) *audio.Player {
	if audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}
	return audioContext.NewPlayerFromBytes(t.PCM(sampleRate))
}
