// Command onsetinfo runs onset detection over a synthetic click train and
// prints the derived peak-picking parameters and detected onsets.
//
// Usage:
//
//	onsetinfo [flags]
//
// Examples:
//
//	onsetinfo
//	onsetinfo -sr 44100 -hop 512
//	onsetinfo -bpm 90 -duration 4 -median
//	onsetinfo -params
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-onset/onset"
)

func main() {
	sampleRate := flag.Float64("sr", 22050, "sample rate in Hz")
	hopLength := flag.Int("hop", 64, "hop length in samples")
	bpm := flag.Float64("bpm", 120, "click tempo in beats per minute")
	duration := flag.Float64("duration", 2, "signal duration in seconds")
	median := flag.Bool("median", false, "aggregate frequency bands by median instead of mean")
	detrend := flag.Bool("detrend", false, "remove the DC component of the envelope")
	paramsOnly := flag.Bool("params", false, "print derived peak-picking parameters and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: onsetinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Detects onsets in a synthetic click train and prints the results.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *sampleRate <= 0 || *hopLength <= 0 || *bpm <= 0 || *duration <= 0 {
		fmt.Fprintf(os.Stderr, "error: sr, hop, bpm and duration must be > 0\n")
		os.Exit(1)
	}

	printParams(*sampleRate, *hopLength)
	if *paramsOnly {
		return
	}

	signal, clicks := clickTrain(*sampleRate, *bpm, *duration)

	opts := []onset.Option{onset.WithHopLength(*hopLength)}
	if *median {
		opts = append(opts, onset.WithAggregate(onset.Median))
	}
	if *detrend {
		opts = append(opts, onset.WithDetrend())
	}

	onsets, err := onset.Detect(signal, *sampleRate, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d clicks synthesized, %d onsets detected\n\n", len(clicks), len(onsets))
	printOnsets(onsets, *sampleRate, *hopLength)
}

func printParams(sampleRate float64, hopLength int) {
	p := onset.DefaultPeakParams(sampleRate, hopLength)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Parameter\tFrames\n")
	fmt.Fprintf(tw, "---------\t------\n")
	fmt.Fprintf(tw, "pre-max\t%.4f\n", p.PreMax)
	fmt.Fprintf(tw, "post-max\t%.4f\n", p.PostMax)
	fmt.Fprintf(tw, "pre-avg\t%.4f\n", p.PreAvg)
	fmt.Fprintf(tw, "post-avg\t%.4f\n", p.PostAvg)
	fmt.Fprintf(tw, "wait\t%.4f\n", p.Wait)
	fmt.Fprintf(tw, "delta\t%.4f\n", p.Delta)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printOnsets(onsets []int, sampleRate float64, hopLength int) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Onset\tFrame\tTime [s]\n")
	fmt.Fprintf(tw, "-----\t-----\t--------\n")
	for i, frame := range onsets {
		sec := float64(frame*hopLength) / sampleRate
		fmt.Fprintf(tw, "%d\t%d\t%.3f\n", i, frame, sec)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// clickTrain synthesizes percussive tone bursts on the beat grid.
func clickTrain(sampleRate, bpm, duration float64) ([]float64, []int) {
	length := int(sampleRate * duration)
	signal := make([]float64, length)

	period := int(sampleRate * 60 / bpm)
	var clicks []int
	for p := period / 2; p+burstLen < length; p += period {
		clicks = append(clicks, p)
		addBurst(signal, p, sampleRate)
	}
	return signal, clicks
}

const burstLen = 512

func addBurst(signal []float64, pos int, sampleRate float64) {
	step := 2 * math.Pi * 2000 / sampleRate
	for i := 0; i < burstLen && pos+i < len(signal); i++ {
		signal[pos+i] += math.Sin(step*float64(i)) * math.Exp(-float64(i)/128)
	}
}
