// Package onset computes onset strength envelopes and locates note onsets.
//
// Onset strength at frame t is the spectral flux of a log-power mel
// spectrogram: the frequency-aggregated positive first difference
// agg_f max(0, S[f][t] - S[f][t-1]). Peaks of the envelope correspond to
// perceptual note onsets. Detection normalizes the envelope to [0, 1] and
// picks peaks against a local adaptive mean threshold, with window and
// spacing parameters derived from the sample rate and hop length.
//
// The default peak-picking constants were found by large-scale parameter
// search over an annotated onset dataset; callers can override any of them
// individually without disturbing the rest.
package onset
