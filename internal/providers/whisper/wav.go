package whisper

import (
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/victor141516/espoquen/internal/domain"
)

// encodeWAV writes float32 PCM samples as a 16-bit mono WAV file.
func encodeWAV(path string, clip domain.Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, clip.SampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: clip.SampleRate},
		Data:           quantize(clip.Samples),
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// quantize converts [-1, 1] float samples to 16-bit integer PCM, clamping
// out-of-range values instead of wrapping.
func quantize(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int(s * 32767)
	}
	return out
}
