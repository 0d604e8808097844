package ports

import "context"

// CompletionRequest is one provider chat-completion call. Zero-valued options
// fall back to the gateway's configured defaults.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatCompleter issues exactly one JSON-mode completion request per call and
// returns the first choice's raw text content.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// RecordStore appends documents to named logical collections.
type RecordStore interface {
	InsertOne(ctx context.Context, collection string, doc any) error
	Ping(ctx context.Context) error
}
