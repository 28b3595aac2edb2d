package answer

import (
	"encoding/json"
	"log"
	"os"

	answerModel "github.com/askgrid/backend/internal/model/answer"
)

// Source supplies the answer payload for assistant turns.
type Source interface {
	Fetch() answerModel.Payload
}

// FileSource reads the payload from a static JSON file. The file is re-read
// on every call so edits show up without a restart; any failure yields the
// built-in fallback, never an error.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource backed by the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch loads and validates the payload, substituting the fallback on any
// read, parse, or shape failure.
func (s *FileSource) Fetch() answerModel.Payload {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		log.Printf("failed to read answer data %s: %v", s.path, err)
		return answerModel.Fallback()
	}

	var payload answerModel.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("failed to parse answer data %s: %v", s.path, err)
		return answerModel.Fallback()
	}

	if !payload.Table.Valid() {
		log.Printf("answer data %s has ragged table rows, using fallback", s.path)
		return answerModel.Fallback()
	}

	return payload
}
