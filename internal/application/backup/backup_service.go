package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	appsettings "github.com/flower8718/backend/internal/application/settings"
	"github.com/flower8718/backend/internal/domain/shared"
)

// TableExporter dumps database tables for the CSV export. Implemented
// by the persistence layer.
type TableExporter interface {
	// TableNames lists the exportable tables
	TableNames(ctx context.Context) ([]string, error)
	// DumpTable returns a table's column names and all of its rows
	DumpTable(ctx context.Context, name string) (columns []string, rows [][]string, err error)
}

// ArchiveStorage uploads finished archives to off-site storage.
type ArchiveStorage interface {
	// Upload stores an archive under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// ArchiveInfo describes one backup archive on disk
type ArchiveInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	Uploaded  bool      `json:"uploaded"`
}

// BackupService exports the database as raw file or CSV archive and
// keeps a rotated set of archives on disk. Off-site upload is optional;
// without storage configured the archives stay local.
type BackupService struct {
	exporter        TableExporter
	storage         ArchiveStorage
	settingsService *appsettings.SettingsService
	dbPath          string
	backupDir       string
	logger          *zap.Logger
}

// NewBackupService creates a new BackupService. storage may be nil.
func NewBackupService(
	exporter TableExporter,
	storage ArchiveStorage,
	settingsService *appsettings.SettingsService,
	dbPath, backupDir string,
	logger *zap.Logger,
) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		exporter:        exporter,
		storage:         storage,
		settingsService: settingsService,
		dbPath:          dbPath,
		backupDir:       backupDir,
		logger:          logger,
	}
}

// DatabasePath returns the raw database file path for direct download.
// Only meaningful when running on the SQLite driver.
func (s *BackupService) DatabasePath() (string, error) {
	if s.dbPath == "" {
		return "", shared.NewDomainError("INVALID_STATE", "Raw database export is only available with SQLite")
	}
	if _, err := os.Stat(s.dbPath); err != nil {
		return "", shared.NewDomainError("NOT_FOUND", "Database file not found")
	}
	return s.dbPath, nil
}

// ExportCSVZip dumps every table as one CSV file inside a zip archive.
// Empty tables are left out.
func (s *BackupService) ExportCSVZip(ctx context.Context) ([]byte, error) {
	tables, err := s.exporter.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, table := range tables {
		columns, rows, err := s.exporter.DumpTable(ctx, table)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			continue
		}

		w, err := zw.Create(table + ".csv")
		if err != nil {
			return nil, err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(columns); err != nil {
			return nil, err
		}
		if err := cw.WriteAll(rows); err != nil {
			return nil, err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CreateArchive writes a timestamped CSV archive to the backup
// directory, uploads it when storage is configured, and prunes archives
// past the retention window.
func (s *BackupService) CreateArchive(ctx context.Context) (*ArchiveInfo, error) {
	data, err := s.ExportCSVZip(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("backup_%s.zip", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	info := &ArchiveInfo{
		Name:      name,
		SizeBytes: int64(len(data)),
		CreatedAt: time.Now(),
	}

	if s.storage != nil {
		if err := s.storage.Upload(ctx, name, data, "application/zip"); err != nil {
			s.logger.Warn("backup upload failed, archive kept locally",
				zap.String("archive", name), zap.Error(err))
		} else {
			info.Uploaded = true
		}
	}

	if err := s.prune(ctx); err != nil {
		s.logger.Warn("backup pruning failed", zap.Error(err))
	}
	return info, nil
}

// ListArchives returns local archives, newest first.
func (s *BackupService) ListArchives(_ context.Context) ([]ArchiveInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ArchiveInfo{}, nil
		}
		return nil, err
	}

	archives := make([]ArchiveInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zip") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		archives = append(archives, ArchiveInfo{
			Name:      entry.Name(),
			SizeBytes: fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].CreatedAt.After(archives[j].CreatedAt)
	})
	return archives, nil
}

// prune removes local archives older than the retention window.
func (s *BackupService) prune(ctx context.Context) error {
	retentionDays, err := s.settingsService.BackupRetentionDays(ctx)
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	archives, err := s.ListArchives(ctx)
	if err != nil {
		return err
	}
	for _, archive := range archives {
		if archive.CreatedAt.Before(cutoff) {
			if err := os.Remove(filepath.Join(s.backupDir, archive.Name)); err != nil {
				return err
			}
			s.logger.Info("pruned expired backup archive", zap.String("archive", archive.Name))
		}
	}
	return nil
}
