package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"macremote/api"
	"macremote/logging"
)

// Writer saves camera snapshots under an output directory
type Writer struct {
	outputDir string
	mu        sync.Mutex
	logger    *logging.Logger
	now       func() time.Time
}

// NewWriter creates a new output writer
func NewWriter(outputDir string, logger *logging.Logger) (*Writer, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Writer{
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// SavePhoto writes a snapshot to a timestamped file and returns its path
func (w *Writer) SavePhoto(photo *api.Photo) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := fmt.Sprintf("snapshot-camera%d-%s%s", photo.CameraID, w.now().Format("20060102-150405"), extensionFor(photo.ContentType))
	path := filepath.Join(w.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if _, err := buf.Write(photo.Data); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush snapshot: %w", err)
	}

	w.logger.Info("Saved %d byte snapshot to %s", len(photo.Data), path)
	return path, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".img"
	}
}
