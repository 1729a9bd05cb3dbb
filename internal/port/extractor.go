package port

import "context"

// TextExtractor turns an uploaded document into plain text. PDF files
// yield concatenated page text; any other supported type is read as-is.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
