package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType names a sound effect.
type SoundType int

const (
	SoundPlace SoundType = iota
	SoundReply
	SoundInvalid
	SoundWin
	SoundLoss
	SoundTie
)

const sampleRate = 44100

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager and synthesizes every effect.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}
	am.sounds[SoundPlace] = synth(0.08, 0.3, func(t, _ float64) float64 {
		return (math.Sin(2*math.Pi*440*t) + 0.3*math.Sin(2*math.Pi*1320*t)) * math.Exp(-t*30)
	})
	am.sounds[SoundReply] = synth(0.08, 0.3, func(t, _ float64) float64 {
		return (math.Sin(2*math.Pi*330*t) + 0.3*math.Sin(2*math.Pi*990*t)) * math.Exp(-t*30)
	})
	am.sounds[SoundInvalid] = synth(0.1, 0.15, func(t, p float64) float64 {
		return (math.Sin(2*math.Pi*150*t) + 0.3*math.Sin(4*math.Pi*150*t)) * (1 - p)
	})
	am.sounds[SoundWin] = chord(0.5, 0.5, 261.63, 329.63, 392.00)
	am.sounds[SoundLoss] = chord(0.5, 0.5, 261.63, 311.13, 392.00)
	am.sounds[SoundTie] = synth(0.25, 0.4, func(t, p float64) float64 {
		return math.Sin(2*math.Pi*523.25*t) * fade(p)
	})
	return am
}

// synth renders wave over duration seconds as 16-bit stereo PCM.
// wave receives the time in seconds and the progress in [0, 1).
func synth(duration, amplitude float64, wave func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		sample := math.Max(-1, math.Min(1, wave(t, t/duration)*amplitude))
		val := int16(sample * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func chord(duration, amplitude float64, freqs ...float64) []byte {
	return synth(duration, amplitude, func(t, p float64) float64 {
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * fade(p)
	})
}

// fade ramps in over the first 10% and out over the last 30%.
func fade(p float64) float64 {
	switch {
	case p < 0.1:
		return p / 0.1
	case p > 0.7:
		return (1 - p) / 0.3
	}
	return 1
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
