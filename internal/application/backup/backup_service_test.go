package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsettings "github.com/flower8718/backend/internal/application/settings"
	"github.com/flower8718/backend/internal/domain/settings"
	"github.com/flower8718/backend/internal/domain/shared"
)

type fakeExporter struct {
	tables map[string][][]string
	cols   map[string][]string
	order  []string
}

func newFakeExporter() *fakeExporter {
	return &fakeExporter{
		tables: make(map[string][][]string),
		cols:   make(map[string][]string),
	}
}

func (e *fakeExporter) addTable(name string, columns []string, rows [][]string) {
	e.order = append(e.order, name)
	e.cols[name] = columns
	e.tables[name] = rows
}

func (e *fakeExporter) TableNames(_ context.Context) ([]string, error) {
	return append([]string(nil), e.order...), nil
}

func (e *fakeExporter) DumpTable(_ context.Context, name string) ([]string, [][]string, error) {
	columns, ok := e.cols[name]
	if !ok {
		return nil, nil, shared.ErrNotFound
	}
	return columns, e.tables[name], nil
}

type fakeArchiveStorage struct {
	uploads map[string][]byte
	err     error
}

func (s *fakeArchiveStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.err != nil {
		return s.err
	}
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[key] = data
	return nil
}

type fakeBackupSettingRepo struct {
	values map[string]string
}

func (r *fakeBackupSettingRepo) FindByKey(_ context.Context, key string) (*settings.Setting, error) {
	if value, ok := r.values[key]; ok {
		return &settings.Setting{Key: key, Value: value}, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBackupSettingRepo) FindAll(_ context.Context) ([]settings.Setting, error) {
	return nil, nil
}

func (r *fakeBackupSettingRepo) Save(_ context.Context, setting *settings.Setting) error {
	r.values[setting.Key] = setting.Value
	return nil
}

func newTestSettings(values map[string]string) *appsettings.SettingsService {
	if values == nil {
		values = make(map[string]string)
	}
	return appsettings.NewSettingsService(&fakeBackupSettingRepo{values: values})
}

func readZip(t *testing.T, data []byte) map[string][][]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][][]string)
	for _, file := range zr.File {
		rc, err := file.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
		require.NoError(t, err)
		out[file.Name] = records
	}
	return out
}

func TestDatabasePath(t *testing.T) {
	t.Run("returns the file when it exists", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "flower.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("sqlite"), 0o644))

		svc := NewBackupService(newFakeExporter(), nil, newTestSettings(nil), dbPath, dir, nil)
		path, err := svc.DatabasePath()
		require.NoError(t, err)
		assert.Equal(t, dbPath, path)
	})

	t.Run("empty path means no raw export", func(t *testing.T) {
		svc := NewBackupService(newFakeExporter(), nil, newTestSettings(nil), "", t.TempDir(), nil)
		_, err := svc.DatabasePath()
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewBackupService(newFakeExporter(), nil, newTestSettings(nil), filepath.Join(dir, "gone.db"), dir, nil)
		_, err := svc.DatabasePath()
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestExportCSVZip(t *testing.T) {
	ctx := context.Background()

	t.Run("each table becomes one csv with a header row", func(t *testing.T) {
		exporter := newFakeExporter()
		exporter.addTable("items", []string{"id", "name"}, [][]string{
			{"1", "バラ"},
			{"2", "ユリ"},
		})
		exporter.addTable("stores", []string{"id", "name"}, [][]string{
			{"1", "本店"},
		})

		svc := NewBackupService(exporter, nil, newTestSettings(nil), "", t.TempDir(), nil)
		data, err := svc.ExportCSVZip(ctx)
		require.NoError(t, err)

		files := readZip(t, data)
		require.Len(t, files, 2)
		require.Contains(t, files, "items.csv")
		assert.Equal(t, [][]string{
			{"id", "name"},
			{"1", "バラ"},
			{"2", "ユリ"},
		}, files["items.csv"])
	})

	t.Run("empty tables are left out", func(t *testing.T) {
		exporter := newFakeExporter()
		exporter.addTable("items", []string{"id", "name"}, [][]string{{"1", "バラ"}})
		exporter.addTable("payments", []string{"id", "amount"}, nil)

		svc := NewBackupService(exporter, nil, newTestSettings(nil), "", t.TempDir(), nil)
		data, err := svc.ExportCSVZip(ctx)
		require.NoError(t, err)

		files := readZip(t, data)
		assert.Contains(t, files, "items.csv")
		assert.NotContains(t, files, "payments.csv")
	})
}

func TestCreateArchive(t *testing.T) {
	ctx := context.Background()

	seedExporter := func() *fakeExporter {
		exporter := newFakeExporter()
		exporter.addTable("items", []string{"id", "name"}, [][]string{{"1", "バラ"}})
		return exporter
	}

	t.Run("writes a local archive without storage", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewBackupService(seedExporter(), nil, newTestSettings(nil), "", dir, nil)

		info, err := svc.CreateArchive(ctx)
		require.NoError(t, err)

		assert.False(t, info.Uploaded)
		assert.Greater(t, info.SizeBytes, int64(0))

		archives, err := svc.ListArchives(ctx)
		require.NoError(t, err)
		require.Len(t, archives, 1)
		assert.Equal(t, info.Name, archives[0].Name)
	})

	t.Run("uploads when storage is configured", func(t *testing.T) {
		dir := t.TempDir()
		storage := &fakeArchiveStorage{}
		svc := NewBackupService(seedExporter(), storage, newTestSettings(nil), "", dir, nil)

		info, err := svc.CreateArchive(ctx)
		require.NoError(t, err)

		assert.True(t, info.Uploaded)
		assert.Contains(t, storage.uploads, info.Name)
	})

	t.Run("upload failure keeps the local archive", func(t *testing.T) {
		dir := t.TempDir()
		storage := &fakeArchiveStorage{err: errors.New("connection refused")}
		svc := NewBackupService(seedExporter(), storage, newTestSettings(nil), "", dir, nil)

		info, err := svc.CreateArchive(ctx)
		require.NoError(t, err)

		assert.False(t, info.Uploaded)
		archives, err := svc.ListArchives(ctx)
		require.NoError(t, err)
		assert.Len(t, archives, 1)
	})

	t.Run("archives past the retention window are pruned", func(t *testing.T) {
		dir := t.TempDir()
		stale := filepath.Join(dir, "backup_20200101_000000.zip")
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
		old := time.Now().AddDate(0, 0, -60)
		require.NoError(t, os.Chtimes(stale, old, old))

		svc := NewBackupService(seedExporter(), nil, newTestSettings(map[string]string{
			settings.KeyBackupRetentionDays: "30",
		}), "", dir, nil)

		info, err := svc.CreateArchive(ctx)
		require.NoError(t, err)

		archives, err := svc.ListArchives(ctx)
		require.NoError(t, err)
		require.Len(t, archives, 1)
		assert.Equal(t, info.Name, archives[0].Name)

		_, err = os.Stat(stale)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestListArchives(t *testing.T) {
	ctx := context.Background()

	t.Run("missing backup directory yields an empty list", func(t *testing.T) {
		svc := NewBackupService(newFakeExporter(), nil, newTestSettings(nil), "", filepath.Join(t.TempDir(), "nope"), nil)
		archives, err := svc.ListArchives(ctx)
		require.NoError(t, err)
		assert.Empty(t, archives)
	})

	t.Run("non-zip files are ignored and newest sorts first", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "backup_a.zip")
		newer := filepath.Join(dir, "backup_b.zip")
		require.NoError(t, os.WriteFile(older, []byte("a"), 0o644))
		require.NoError(t, os.WriteFile(newer, []byte("b"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(older, past, past))

		svc := NewBackupService(newFakeExporter(), nil, newTestSettings(nil), "", dir, nil)
		archives, err := svc.ListArchives(ctx)
		require.NoError(t, err)

		require.Len(t, archives, 2)
		assert.Equal(t, "backup_b.zip", archives[0].Name)
		assert.Equal(t, "backup_a.zip", archives[1].Name)
	})
}
