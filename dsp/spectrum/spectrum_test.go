package spectrum

import (
	"math"
	"testing"
)

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 {
		t.Fatalf("Power[0]=%f want=25", pow[0])
	}

	if math.Abs(pow[1]-2) > 1e-12 {
		t.Fatalf("Power[1]=%f want=2", pow[1])
	}

	if pow[2] != 0 {
		t.Fatalf("Power[2]=%f want=0", pow[2])
	}
}

func TestMagnitudeToReusesBuffer(t *testing.T) {
	bins := []complex128{1 + 0i, 0 + 2i}
	dst := make([]float64, len(bins))

	MagnitudeTo(dst, bins)
	if math.Abs(dst[0]-1) > 1e-12 || math.Abs(dst[1]-2) > 1e-12 {
		t.Fatalf("unexpected MagnitudeTo output: %v", dst)
	}
}

func TestLogAmplitudeReference(t *testing.T) {
	out := LogAmplitude([]float64{1, 10, 100}, WithoutClip())

	want := []float64{0, 10, 20}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-12 {
			t.Fatalf("out[%d]=%f want=%f", i, out[i], want[i])
		}
	}
}

func TestLogAmplitudeFloor(t *testing.T) {
	out := LogAmplitude([]float64{0}, WithoutClip())

	// Zero power clamps to the 1e-10 floor: 10*log10(1e-10) = -100 dB.
	if math.Abs(out[0]+100) > 1e-12 {
		t.Fatalf("out[0]=%f want=-100", out[0])
	}
}

func TestLogAmplitudeClip(t *testing.T) {
	out := LogAmplitude([]float64{1e-10, 100})

	// Peak is 20 dB; default 80 dB range clips the floor value at -60 dB.
	if math.Abs(out[1]-20) > 1e-12 {
		t.Fatalf("out[1]=%f want=20", out[1])
	}

	if math.Abs(out[0]+60) > 1e-12 {
		t.Fatalf("out[0]=%f want=-60", out[0])
	}
}

func TestLogAmplitudeMatrixGlobalClip(t *testing.T) {
	out := LogAmplitudeMatrix([][]float64{{1e-10, 1}, {100, 1}}, WithTopDB(40))

	// Global peak 20 dB, clip at -20 dB across all rows.
	if math.Abs(out[0][0]+20) > 1e-12 {
		t.Fatalf("out[0][0]=%f want=-20", out[0][0])
	}

	if math.Abs(out[1][0]-20) > 1e-12 {
		t.Fatalf("out[1][0]=%f want=20", out[1][0])
	}
}

func TestLogAmplitudeEmpty(t *testing.T) {
	if out := LogAmplitude(nil); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}
