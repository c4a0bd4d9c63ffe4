package audio

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// RealtimeOutput plays the engine through the system audio device
type RealtimeOutput struct {
	engine    *Engine
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	buffer    []float64
	running   atomic.Bool
}

// NewRealtimeOutput opens the audio device and starts pulling samples
func NewRealtimeOutput(engine *Engine) (*RealtimeOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   engine.SampleRate,
		ChannelCount: 1, // Mono
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	rt := &RealtimeOutput{
		engine: engine,
		otoCtx: otoCtx,
		buffer: make([]float64, 512),
	}
	rt.running.Store(true)

	rt.otoPlayer = otoCtx.NewPlayer(&audioStream{rt: rt})
	rt.otoPlayer.SetBufferSize(engine.SampleRate / 10) // 100ms buffer
	rt.otoPlayer.Play()

	return rt, nil
}

// Close stops the audio output
func (rt *RealtimeOutput) Close() error {
	rt.running.Store(false)
	if rt.otoPlayer != nil {
		if err := rt.otoPlayer.Close(); err != nil {
			return fmt.Errorf("cannot close oto player: %w", err)
		}
	}
	return nil
}

// audioStream implements io.Reader for oto
type audioStream struct {
	rt *RealtimeOutput
}

func (s *audioStream) Read(buf []byte) (int, error) {
	if !s.rt.running.Load() {
		clear(buf)
		return len(buf), nil
	}

	samples := len(buf) / 2 // 16-bit = 2 bytes per sample
	if samples > len(s.rt.buffer) {
		s.rt.buffer = make([]float64, samples)
	}

	s.rt.engine.GenerateSamples(s.rt.buffer[:samples])

	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(toPCM16(s.rt.buffer[i])))
	}
	return samples * 2, nil
}
