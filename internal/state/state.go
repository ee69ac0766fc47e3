package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileState represents the last render of a single source file
type FileState struct {
	MTime      int64  `json:"mtime"`
	Hash       string `json:"hash"`
	Output     string `json:"output"`
	Nodes      int    `json:"nodes"`
	RenderedAt int64  `json:"rendered_at"`
}

// State represents the build state
type State struct {
	// Options fingerprints the parser settings of the last build. A change
	// invalidates every file.
	Options string                `json:"options"`
	Files   map[string]*FileState `json:"files"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// Fingerprint hashes any JSON-encodable value, used for parser options
func Fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data)), nil
}

// HasChanged checks if a file has changed since it was last rendered
// Uses hybrid mtime + hash approach
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	mtime := info.ModTime().Unix()

	fileState, exists := s.Files[path]
	if !exists {
		return true, nil
	}

	// A missing output has to be written again
	if _, err := os.Stat(fileState.Output); err != nil {
		return true, nil
	}

	// Fast path: check mtime first
	if mtime == fileState.MTime {
		return false, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records a successful render of path into output
func (s *State) Update(path, output string, nodes int) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.Files[path] = &FileState{
		MTime:      info.ModTime().Unix(),
		Hash:       hash,
		Output:     output,
		Nodes:      nodes,
		RenderedAt: time.Now().Unix(),
	}

	return nil
}

// Prune drops entries whose source is not in keep and returns their
// outputs, sorted
func (s *State) Prune(keep []string) []string {
	live := make(map[string]bool, len(keep))
	for _, path := range keep {
		live[path] = true
	}

	var outputs []string
	for path, fs := range s.Files {
		if live[path] {
			continue
		}
		outputs = append(outputs, fs.Output)
		delete(s.Files, path)
	}
	sort.Strings(outputs)
	return outputs
}

// GetRenderedAt returns when a file was last rendered
func (s *State) GetRenderedAt(path string) time.Time {
	if fileState, exists := s.Files[path]; exists {
		return time.Unix(fileState.RenderedAt, 0)
	}
	return time.Time{}
}
