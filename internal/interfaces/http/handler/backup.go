package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	backupapp "github.com/flower8718/backend/internal/application/backup"
)

// BackupHandler handles database export and archive endpoints
type BackupHandler struct {
	BaseHandler
	backupService *backupapp.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *backupapp.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// RegisterRoutes registers backup routes
func (h *BackupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	backup := rg.Group("/backup")
	{
		backup.GET("/database", h.DownloadDatabase)
		backup.GET("/csv", h.DownloadCSV)
		backup.GET("/archives", h.ListArchives)
		backup.POST("/archives", h.CreateArchive)
	}
}

// DownloadDatabase streams the raw SQLite file. Unavailable on the
// Postgres driver.
func (h *BackupHandler) DownloadDatabase(c *gin.Context) {
	path, err := h.backupService.DatabasePath()
	if err != nil {
		h.DomainError(c, err)
		return
	}

	name := fmt.Sprintf("hana_flower_system_%s.db", time.Now().Format("20060102_150405"))
	c.FileAttachment(path, name)
}

// DownloadCSV streams every table as CSV files inside one zip archive
func (h *BackupHandler) DownloadCSV(c *gin.Context) {
	data, err := h.backupService.ExportCSVZip(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}

	name := fmt.Sprintf("hana_flower_export_%s.zip", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// CreateArchive writes a new archive to the backup directory, uploads
// it when off-site storage is configured and prunes expired ones.
func (h *BackupHandler) CreateArchive(c *gin.Context) {
	info, err := h.backupService.CreateArchive(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, info)
}

// ListArchives returns the archives currently on disk, newest first
func (h *BackupHandler) ListArchives(c *gin.Context) {
	archives, err := h.backupService.ListArchives(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, archives)
}
