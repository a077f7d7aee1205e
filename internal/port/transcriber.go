package port

import "context"

// TranscribeInput identifies the audio object to transcribe.
type TranscribeInput struct {
	JobName     string
	MediaURI    string
	MediaFormat string
	Language    string
	OutputKey   string
}

// Transcriber abstracts the speech-to-text service. Run blocks until the
// job reaches a terminal state or ctx is done.
type Transcriber interface {
	Run(ctx context.Context, input TranscribeInput) error
}
