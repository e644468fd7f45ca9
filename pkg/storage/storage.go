package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TempPattern names the temporary sibling of a target: "<base>.*.tmp".
// Each save gets its own file, so concurrent writers never share one.
const TempPattern = ".*.tmp"

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// EncodeJSON renders payload as indented UTF-8 JSON. Non-ASCII text is kept
// as-is and HTML characters are not escaped.
func EncodeJSON(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("error encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes payload and replaces filePath with it atomically.
// It returns the bytes written so callers can hash or measure them.
func (s *Storage) WriteJSON(filePath string, payload any) ([]byte, error) {
	data, err := EncodeJSON(payload)
	if err != nil {
		return nil, err
	}
	if err := s.SaveFile(filePath, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveFile writes content to a uniquely named temporary file next to
// filePath, syncs it and renames it over filePath. A concurrent reader sees
// either the previous complete file or the new one, and of two overlapping
// saves the later rename wins. If the process dies between write and rename
// the temporary file stays behind.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(filePath)+TempPattern)
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpPath := f.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing temporary file: %w", err)
	}
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return fmt.Errorf("error setting file mode: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("error syncing temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	success = true

	// Make the rename durable; failure here does not undo a completed save.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// ReadJSON decodes the JSON document at filePath into v.
func (s *Storage) ReadJSON(filePath string, v any) error {
	data, err := s.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding %s: %w", filePath, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}
