package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	importerapp "github.com/flower8718/backend/internal/application/importer"
	csvimport "github.com/flower8718/backend/internal/infrastructure/import"
	"github.com/flower8718/backend/internal/interfaces/http/dto"
)

// maxImportFileSize caps uploaded CSV files at 10MB
const maxImportFileSize = 10 << 20

// ImportHandler handles supplier CSV import endpoints. Both endpoints
// take a multipart upload; preview never writes, execute commits the
// rows as arrivals inside one transaction.
type ImportHandler struct {
	BaseHandler
	importService *importerapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *importerapp.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	{
		imports.POST("/preview", h.Preview)
		imports.POST("/execute", h.Execute)
	}
}

// readUpload pulls the CSV file out of the multipart form
func (h *ImportHandler) readUpload(c *gin.Context) ([]byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return nil, false
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest, "file exceeds maximum size of 10MB")
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "could not read uploaded file")
		return nil, false
	}
	if len(data) == 0 {
		h.BadRequest(c, "uploaded file is empty")
		return nil, false
	}
	return data, true
}

// formUint reads a numeric form field, 0 when absent
func formUint(c *gin.Context, name string) (uint, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// formInt reads a numeric form field with a fallback
func formInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// formOptionalInt reads a numeric form field, nil when absent
func formOptionalInt(c *gin.Context, name string) (*int, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formDelimiter reads the delimiter form field, comma when absent
func formDelimiter(c *gin.Context) (rune, bool) {
	raw := c.PostForm("delimiter")
	if raw == "" {
		return ',', true
	}
	runes := []rune(raw)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// Preview decodes the uploaded file and returns its headers and first
// rows so the operator can check the column mapping.
func (h *ImportHandler) Preview(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	supplierID, err := formUint(c, "supplier_id")
	if err != nil || supplierID == 0 {
		h.BadRequest(c, "supplier_id is required")
		return
	}
	skipHeader, err := formOptionalInt(c, "skip_header")
	if err != nil || (skipHeader != nil && *skipHeader < 0) {
		h.BadRequest(c, "skip_header must be a non-negative number")
		return
	}
	limit, err := formInt(c, "limit", 0)
	if err != nil || limit < 0 {
		h.BadRequest(c, "limit must be a non-negative number")
		return
	}
	delimiter, ok := formDelimiter(c)
	if !ok {
		h.BadRequest(c, "delimiter must be a single character")
		return
	}

	preview, err := h.importService.Preview(c.Request.Context(), importerapp.PreviewRequest{
		SupplierID: supplierID,
		Data:       data,
		Encoding:   c.PostForm("encoding"),
		Delimiter:  delimiter,
		SkipHeader: skipHeader,
		Limit:      limit,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, preview)
}

// Execute imports the uploaded file as arrival records. Column indexes
// default to the common market layout when not given.
func (h *ImportHandler) Execute(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	supplierID, err := formUint(c, "supplier_id")
	if err != nil || supplierID == 0 {
		h.BadRequest(c, "supplier_id is required")
		return
	}
	skipHeader, err := formOptionalInt(c, "skip_header")
	if err != nil || (skipHeader != nil && *skipHeader < 0) {
		h.BadRequest(c, "skip_header must be a non-negative number")
		return
	}
	delimiter, ok := formDelimiter(c)
	if !ok {
		h.BadRequest(c, "delimiter must be a single character")
		return
	}

	mapping := csvimport.DefaultColumnMapping()
	if v, err := formInt(c, "item_name_col", mapping.ItemName); err == nil {
		mapping.ItemName = v
	} else {
		h.BadRequest(c, "item_name_col must be a number")
		return
	}
	if v, err := formInt(c, "variety_col", mapping.Variety); err == nil {
		mapping.Variety = v
	} else {
		h.BadRequest(c, "variety_col must be a number")
		return
	}
	if v, err := formInt(c, "quantity_col", mapping.Quantity); err == nil {
		mapping.Quantity = v
	} else {
		h.BadRequest(c, "quantity_col must be a number")
		return
	}
	if v, err := formInt(c, "unit_price_col", mapping.UnitPrice); err == nil {
		mapping.UnitPrice = v
	} else {
		h.BadRequest(c, "unit_price_col must be a number")
		return
	}

	arrivedAt := time.Now()
	if raw := c.PostForm("arrived_at"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "arrived_at must be formatted as YYYY-MM-DD")
			return
		}
		arrivedAt = parsed
	}

	result, err := h.importService.Execute(c.Request.Context(), importerapp.ExecuteRequest{
		SupplierID: supplierID,
		Data:       data,
		Encoding:   c.PostForm("encoding"),
		Delimiter:  delimiter,
		SkipHeader: skipHeader,
		Mapping:    mapping,
		ArrivedAt:  arrivedAt,
	})
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}
