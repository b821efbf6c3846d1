package poll

import (
	"context"
	"encoding/json"
	"os"
)

// FileSource polls a local JSON file. The producing process may not have
// started yet, so a missing file is a normal failure, not an exceptional
// one. Reads have no artificial timeout; a local read either succeeds or
// fails promptly.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a poller for a local JSON file.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name returns the source identifier.
func (s *FileSource) Name() string { return s.name }

// Path returns the polled file path.
func (s *FileSource) Path() string { return s.path }

// Poll reads and decodes the file. The context is accepted for interface
// symmetry; local reads are not cancellable mid-flight.
func (s *FileSource) Poll(_ context.Context) (Payload, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, failf(ReasonFileNotFound, "%s does not exist", s.path)
		}
		return nil, failf(ReasonFileRead, "%v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil || p == nil {
		return nil, failf(ReasonDecode, "%s is not a JSON object", s.path)
	}
	return p, nil
}
