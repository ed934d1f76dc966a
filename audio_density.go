package main

import (
	"math"
	"sync"
)

// densityAudioStream is an endless 16-bit stereo sine tone whose volume
// follows the live cell density set by the game loop.
type densityAudioStream struct {
	mu    sync.Mutex
	level float32
	gain  float32
	phase float64
}

func newDensityAudioStream() *densityAudioStream {
	return &densityAudioStream{}
}

// SetLevel sets the target volume, clamped to [0, 1].
func (s *densityAudioStream) SetLevel(v float32) {
	if v > 1 {
		v = 1
	} else if v < 0 {
		v = 0
	}
	s.mu.Lock()
	s.level = v
	s.mu.Unlock()
}

func (s *densityAudioStream) Read(p []byte) (int, error) {
	// Only whole stereo frames (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	const smoothing = 0.0005
	step := 2 * math.Pi * audioToneHz / audioSampleRate
	for i := 0; i < frameBytes; i += 4 {
		s.gain += (s.level - s.gain) * smoothing
		v := int16(math.Sin(s.phase) * float64(s.gain) * pcm16MaxValue)
		s.phase += step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *densityAudioStream) Close() error {
	return nil
}
