package lint

import (
	"context"

	"github.com/beylint/beylint/pkg/cst"
)

// Parser parses source content into a FileSnapshot. The interface lives in
// the consumer package; parser/csharp provides the implementation.
//
// Implementations must be deterministic for a given (path, content) pair,
// safe for concurrent use, and side-effect free. Malformed source is not an
// error: the snapshot degrades to missing tokens and partial nodes instead.
type Parser interface {
	// Parse converts raw source bytes into a fully-populated FileSnapshot.
	// The returned snapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - rendering snapshot.Tokens reproduces content byte-for-byte
	//   - snapshot.Root != nil && snapshot.Root.Kind == cst.NodeFile
	Parse(ctx context.Context, path string, content []byte) (*cst.FileSnapshot, error)
}
