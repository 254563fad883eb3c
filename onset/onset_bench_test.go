package onset

import "testing"

func BenchmarkStrengthSpectral(b *testing.B) {
	sizes := []struct {
		name   string
		bands  int
		frames int
	}{
		{"128x256", 128, 256},
		{"128x1K", 128, 1024},
		{"128x4K", 128, 4096},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			s := make([][]float64, testCase.bands)
			for r := range s {
				s[r] = make([]float64, testCase.frames)
				for i := range s[r] {
					s[r][i] = float64((r*31+i*17)%97) / 97
				}
			}

			b.SetBytes(int64(testCase.bands * testCase.frames * 8))
			b.ResetTimer()

			for range b.N {
				_, _ = StrengthSpectral(s, WithoutCentering())
			}
		})
	}
}

func BenchmarkDetectEnvelope(b *testing.B) {
	env := make([]float64, 8192)
	for i := range env {
		env[i] = float64((i*i)%251) / 251
	}

	b.SetBytes(int64(len(env) * 8))

	for range b.N {
		_, _ = DetectEnvelope(env, 22050)
	}
}
