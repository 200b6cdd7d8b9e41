package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"gentil/internal/models"
	"gentil/internal/providers"
	"gentil/internal/services"

	json "github.com/goccy/go-json"
)

// FileManager writes draft snapshots to disk and reads them back.
type FileManager struct {
	drafts     services.DraftServiceInterface
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor CompressorInterface, drafts services.DraftServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		drafts:     drafts,
		logger:     logger,
	}
}

// SaveToFile replaces fileName atomically through a synced temp file.
func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.drafts.Snapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores drafts from fileName. A missing file leaves the
// service untouched.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.DraftSnapshot
	if err = json.Unmarshal(decompressedData, &snapshot); err != nil {
		return err
	}
	if snapshot.Version == 0 || snapshot.Version > 1 {
		return fmt.Errorf("unsupported draft snapshot version %d", snapshot.Version)
	}

	f.drafts.Restore(&snapshot)
	f.logger.Infof(providers.TypeApp, "Restored %d drafts from %s", len(snapshot.Drafts), fileName)
	return nil
}
