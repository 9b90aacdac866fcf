package domain

// Image is one uploaded screenshot.
type Image struct {
	MIMEType string
	Data     []byte
}

// ExtractionResult is the classifier's proposal for a new collection.
// Nothing is stored until the result is accepted.
type ExtractionResult struct {
	CategoryID string
	Title      string
	Quotes     []string
}

// RankCandidate is the minimal quote view sent to the intent ranker.
type RankCandidate struct {
	ID   string
	Text string
}
