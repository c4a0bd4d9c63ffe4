package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"
)

// toPCM16 clamps a sample and converts it to 16-bit signed
func toPCM16(sample float64) int16 {
	if sample > 1.0 {
		sample = 1.0
	}
	if sample < -1.0 {
		sample = -1.0
	}
	return int16(sample * math.MaxInt16)
}

// WAVWriter writes audio to WAV format
type WAVWriter struct {
	writer      io.Writer
	sampleRate  int
	channels    int
	dataWritten int
}

// NewWAVWriter creates a WAV writer
func NewWAVWriter(w io.Writer, sampleRate, channels int) *WAVWriter {
	return &WAVWriter{
		writer:     w,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// WriteHeader writes the RIFF/WAVE header for dataSize bytes of 16-bit PCM
func (w *WAVWriter) WriteHeader(dataSize int) error {
	byteRate := w.sampleRate * w.channels * 2
	blockAlign := w.channels * 2

	header := []any{
		[]byte("RIFF"),
		uint32(dataSize + 36),
		[]byte("WAVE"),
		[]byte("fmt "),
		uint32(16),           // Chunk size
		uint16(1),            // PCM format
		uint16(w.channels),   // Channels
		uint32(w.sampleRate), // Sample rate
		uint32(byteRate),     // Byte rate
		uint16(blockAlign),   // Block align
		uint16(16),           // Bits per sample
		[]byte("data"),
		uint32(dataSize),
	}
	for _, field := range header {
		if err := binary.Write(w.writer, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("could not write WAV header: %w", err)
		}
	}
	return nil
}

// WriteSamples writes float samples as 16-bit PCM
func (w *WAVWriter) WriteSamples(samples []float64) error {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = toPCM16(s)
	}
	if err := binary.Write(w.writer, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("could not write samples: %w", err)
	}
	w.dataWritten += len(pcm) * 2
	return nil
}

// DataWritten returns the number of sample bytes written so far
func (w *WAVWriter) DataWritten() int {
	return w.dataWritten
}

// ExportWAV renders length of audio from the engine as mono 16-bit WAV
func ExportWAV(engine *Engine, writer io.Writer, length time.Duration) error {
	if length <= 0 {
		return fmt.Errorf("invalid export length %v", length)
	}
	sampleRate := engine.SampleRate
	totalSamples := int(length.Seconds() * float64(sampleRate))
	dataSize := totalSamples * 2 // 16-bit mono

	wavWriter := NewWAVWriter(writer, sampleRate, 1)
	if err := wavWriter.WriteHeader(dataSize); err != nil {
		return err
	}

	// Generate in chunks
	chunkSize := 4096
	buffer := make([]float64, chunkSize)
	for written := 0; written < totalSamples; {
		remaining := totalSamples - written
		if remaining < chunkSize {
			buffer = buffer[:remaining]
		}
		engine.GenerateSamples(buffer)
		if err := wavWriter.WriteSamples(buffer); err != nil {
			return err
		}
		written += len(buffer)
	}
	return nil
}
