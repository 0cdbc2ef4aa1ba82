package term

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneDuration = 150 * time.Millisecond

	successFreq = 880
	failureFreq = 220
)

// tones plays short outcome beeps. The zero value is silent.
type tones struct {
	ok bool
}

func (t *tones) init() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		t.ok = true
	}
	return err
}

func (t *tones) play(freq float64) {
	if !t.ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}

func (t *tones) close() {
	if t.ok {
		speaker.Close()
		t.ok = false
	}
}
