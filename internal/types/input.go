package types

import (
	"encoding/json"
	"fmt"
	"io"
)

// SessionInput is the JSON snapshot the host writes to stdin for one render.
type SessionInput struct {
	SessionID      string      `json:"session_id,omitempty"`
	TranscriptPath string      `json:"transcript_path,omitempty"`
	Model          ModelInfo   `json:"model"`
	Workspace      Workspace   `json:"workspace"`
	OutputStyle    OutputStyle `json:"output_style"`
}

type ModelInfo struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type Workspace struct {
	CurrentDir string `json:"current_dir,omitempty"`
	ProjectDir string `json:"project_dir,omitempty"`
}

type OutputStyle struct {
	Name string `json:"name,omitempty"`
}

// DecodeSessionInput reads the whole stream and decodes it. Callers fall back to
// a zero SessionInput on error.
func DecodeSessionInput(r io.Reader) (SessionInput, error) {
	var in SessionInput

	data, err := io.ReadAll(r)
	if err != nil {
		return SessionInput{}, fmt.Errorf("%w: read: %v", ErrInvalidInput, err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return SessionInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return in, nil
}
