package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// SampleRate is what the transcriber expects: 16 kHz mono.
const SampleRate = 16000

// ErrNoSpeech means the microphone was open but nothing above the
// silence threshold arrived in time. Callers re-prompt and keep going.
var ErrNoSpeech = errors.New("no speech detected")

type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordUtterance captures one utterance: it waits up to eight seconds
// for speech to start, then records until 700ms of trailing silence or
// the ten-second cap.
func (r *Recorder) RecordUtterance() ([]float32, error) {
	const (
		frameSize        = 320 // 20ms at 16 kHz
		frameMillis      = 20
		silenceThreshRMS = 0.015
		waitForSpeech    = 8 * time.Second
		trailingSilence  = 700 * time.Millisecond
		maxUtterance     = 10 * time.Second
	)

	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		waited        time.Duration
		silenceFrames int
	)

	maxFrames := int(maxUtterance/time.Millisecond) / frameMillis

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > silenceThreshRMS {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}

		if !speaking {
			waited += frameMillis * time.Millisecond
			if waited >= waitForSpeech {
				return nil, ErrNoSpeech
			}
			continue
		}

		silenceFrames++
		if time.Duration(silenceFrames)*frameMillis*time.Millisecond >= trailingSilence {
			break
		}
		out = append(out, buf...)
	}

	if !speaking {
		return nil, ErrNoSpeech
	}

	return out, nil
}

func frameRMS(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
