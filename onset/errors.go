package onset

import "errors"

var (
	// ErrNoSpectralInput reports that neither a spectrogram nor a signal
	// was available to compute onset strength from.
	ErrNoSpectralInput = errors.New("onset: no spectral input available")

	// ErrNoEnvelope reports that neither a signal nor a precomputed
	// envelope was available for onset detection.
	ErrNoEnvelope = errors.New("onset: neither signal nor envelope provided")
)
