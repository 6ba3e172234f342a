package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// GetDuration returns an audio file's duration in seconds via ffprobe.
func GetDuration(audioPath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration: %w", err)
	}

	return duration, nil
}

// DetectBPM estimates tempo using librosa's beat tracker on the first
// 60 seconds of audio. Returns 120 when librosa is unavailable or the
// detection fails, since a usable default beats a hard error here.
func DetectBPM(audioPath string) float64 {
	script := `
import sys
import librosa
import numpy as np
y, sr = librosa.load(sys.argv[1], sr=22050, duration=60)
tempo, _ = librosa.beat.beat_track(y=y, sr=sr)
if isinstance(tempo, np.ndarray):
    tempo = float(tempo[0]) if len(tempo) > 0 else 120.0
print(round(float(tempo), 1))
`
	cmd := exec.Command("python3", "-c", script, audioPath)
	output, err := cmd.Output()
	if err != nil {
		return 120.0
	}

	bpm, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || bpm <= 0 {
		return 120.0
	}

	return bpm
}

// Waveform holds downsampled amplitude data for visualization.
type Waveform struct {
	Samples          []float64 `json:"samples"`
	Duration         float64   `json:"duration"`
	SamplesPerSecond int       `json:"samples_per_second"`
}

const waveformSamplesPerSecond = 20

// ExtractWaveform decodes an audio file to mono PCM via ffmpeg and
// computes RMS amplitude windows at ~20 samples per second, normalized
// to 0..1.
func ExtractWaveform(audioPath string) (*Waveform, error) {
	const sampleRate = 22050

	cmd := exec.Command("ffmpeg",
		"-v", "quiet",
		"-i", audioPath,
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "s16le",
		"-",
	)

	pcm, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	sampleCount := len(pcm) / 2
	if sampleCount == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", audioPath)
	}

	duration := float64(sampleCount) / float64(sampleRate)
	totalWindows := int(duration * waveformSamplesPerSecond)
	if totalWindows == 0 {
		totalWindows = 1
	}
	windowSize := sampleCount / totalWindows
	if windowSize == 0 {
		windowSize = 1
	}

	samples := make([]float64, 0, totalWindows)
	maxVal := 0.0

	for w := 0; w < totalWindows; w++ {
		start := w * windowSize
		end := start + windowSize
		if end > sampleCount {
			end = sampleCount
		}
		if start >= sampleCount {
			break
		}

		var sumSquares float64
		for i := start; i < end; i++ {
			v := float64(int16(binary.LittleEndian.Uint16(pcm[i*2:]))) / 32768.0
			sumSquares += v * v
		}
		rms := math.Sqrt(sumSquares / float64(end-start))
		samples = append(samples, rms)
		if rms > maxVal {
			maxVal = rms
		}
	}

	if maxVal > 0 {
		for i := range samples {
			samples[i] /= maxVal
		}
	}

	return &Waveform{
		Samples:          samples,
		Duration:         duration,
		SamplesPerSecond: waveformSamplesPerSecond,
	}, nil
}
