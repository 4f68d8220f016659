package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	appalert "github.com/flower8718/backend/internal/application/alert"
	"github.com/flower8718/backend/internal/domain/catalog"
	"github.com/flower8718/backend/internal/domain/inventory"
	"github.com/flower8718/backend/internal/domain/partner"
	"github.com/flower8718/backend/internal/domain/shared"
	csvimport "github.com/flower8718/backend/internal/infrastructure/import"
)

// maxErrorsReported caps the error list returned to the client.
const maxErrorsReported = 10

// skipHeaderOrDefault treats a missing skip count as the usual single
// header row. An explicit zero means every row is data.
func skipHeaderOrDefault(v *int) int {
	if v != nil {
		return *v
	}
	return 1
}

// PreviewRequest asks for a look at a supplier CSV before importing.
// SkipHeader is left nil to use the usual single header row.
type PreviewRequest struct {
	SupplierID uint
	Data       []byte
	Encoding   string // overrides the supplier's declared encoding
	Delimiter  rune
	SkipHeader *int
	Limit      int
}

// PreviewRow is one raw row shown in the preview
type PreviewRow struct {
	RowNumber int      `json:"row_number"`
	Raw       []string `json:"raw"`
}

// PreviewResponse shows the file's shape before committing an import
type PreviewResponse struct {
	SupplierID   uint         `json:"supplier_id"`
	SupplierName string       `json:"supplier_name"`
	Encoding     string       `json:"encoding"`
	Headers      []string     `json:"headers"`
	Rows         []PreviewRow `json:"rows"`
	TotalColumns int          `json:"total_columns"`
}

// ExecuteRequest commits a supplier CSV as arrival records
type ExecuteRequest struct {
	SupplierID uint
	Data       []byte
	Encoding   string
	Delimiter  rune
	SkipHeader *int
	Mapping    csvimport.ColumnMapping
	ArrivedAt  time.Time
}

// ImportResult summarizes what an import did
type ImportResult struct {
	TotalRows       int      `json:"total_rows"`
	Imported        int      `json:"imported"`
	Skipped         int      `json:"skipped"`
	Errors          []string `json:"errors"`
	NewItemsCreated int      `json:"new_items_created"`
}

// ImportService turns supplier CSV exports into arrival records.
// Unknown item names become new item masters with a generated code.
type ImportService struct {
	supplierRepo partner.SupplierRepository
	itemRepo     catalog.ItemRepository
	txScope      TransactionScope
	alertService *appalert.AlertService
}

// NewImportService creates a new ImportService
func NewImportService(
	supplierRepo partner.SupplierRepository,
	itemRepo catalog.ItemRepository,
	txScope TransactionScope,
	alertService *appalert.AlertService,
) *ImportService {
	return &ImportService{
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		txScope:      txScope,
		alertService: alertService,
	}
}

// decode resolves the encoding chain for a supplier's file.
func (s *ImportService) decode(ctx context.Context, supplierID uint, data []byte, override string) ([]byte, string, *partner.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, "", nil, err
	}

	declared := supplier.CSVEncoding
	if override != "" {
		declared = override
	}
	decoded, used, err := csvimport.DecodeToUTF8(data, declared)
	if err != nil {
		return nil, "", nil, shared.NewDomainError("INVALID_INPUT", "Could not decode CSV file: "+err.Error())
	}
	return decoded, used, supplier, nil
}

// Preview decodes the file and returns its header row and the first
// rows, without writing anything.
func (s *ImportService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	decoded, used, supplier, err := s.decode(ctx, req.SupplierID, req.Data, req.Encoding)
	if err != nil {
		return nil, err
	}

	delimiter := req.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	skip := skipHeaderOrDefault(req.SkipHeader)

	parser := csvimport.NewParser(
		csvimport.WithDelimiter(delimiter),
		csvimport.WithSkipHeader(skip),
	)
	headers, err := parser.Headers(decoded)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Could not read CSV header: "+err.Error())
	}

	raw, err := parser.RawRows(decoded, limit)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Could not read CSV file: "+err.Error())
	}

	rows := make([]PreviewRow, len(raw))
	for i, record := range raw {
		rows[i] = PreviewRow{RowNumber: skip + i + 1, Raw: record}
	}

	return &PreviewResponse{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Encoding:     used,
		Headers:      headers,
		Rows:         rows,
		TotalColumns: len(headers),
	}, nil
}

// Execute imports the file inside one transaction. Rows failing the
// skip rules are counted, not fatal; persistent errors are raised as
// alerts so they surface on the dashboard.
func (s *ImportService) Execute(ctx context.Context, req ExecuteRequest) (*ImportResult, error) {
	decoded, _, supplier, err := s.decode(ctx, req.SupplierID, req.Data, req.Encoding)
	if err != nil {
		return nil, err
	}

	delimiter := req.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	parser := csvimport.NewParser(
		csvimport.WithDelimiter(delimiter),
		csvimport.WithSkipHeader(skipHeaderOrDefault(req.SkipHeader)),
		csvimport.WithMapping(req.Mapping),
	)

	parsed, err := parser.Parse(decoded)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Could not parse CSV file: "+err.Error())
	}

	result := &ImportResult{
		TotalRows: parsed.RowCount,
		Skipped:   parsed.Skipped,
	}
	for _, rowErr := range parsed.Errors {
		if len(result.Errors) < maxErrorsReported {
			result.Errors = append(result.Errors, rowErr.Error())
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		taken, err := repos.ItemRepo().AllCodes(ctx)
		if err != nil {
			return err
		}
		codeGen := catalog.NewCodeGenerator(taken)

		for _, row := range parsed.Rows {
			if err := s.importRow(ctx, repos, codeGen, supplier.ID, row, req.ArrivedAt, result); err != nil {
				if len(result.Errors) < maxErrorsReported {
					result.Errors = append(result.Errors, fmt.Sprintf("行 %d: %s", row.LineNumber, err.Error()))
				}
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 && s.alertService != nil {
		detail := fmt.Sprintf("supplier=%s imported=%d skipped=%d", supplier.Name, result.Imported, result.Skipped)
		_ = s.alertService.Raise(ctx, "csv_import", "CSV import finished with errors", detail)
	}
	return result, nil
}

// importRow resolves or creates the item, then books the arrival into
// both ledgers.
func (s *ImportService) importRow(
	ctx context.Context,
	repos TransactionalRepositories,
	codeGen *catalog.CodeGenerator,
	supplierID uint,
	row csvimport.ArrivalRow,
	arrivedAt time.Time,
	result *ImportResult,
) error {
	item, err := repos.ItemRepo().FindByNameAndVariety(ctx, row.ItemName, row.Variety)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		code, err := codeGen.Next()
		if err != nil {
			return err
		}
		item, err = catalog.NewItem(code, row.ItemName, row.Variety, catalog.DefaultCategory, row.UnitPrice, catalog.TaxRateStandard)
		if err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		result.NewItemsCreated++
	}

	arrival, err := inventory.NewArrival(item.ID, supplierID, row.Quantity, row.UnitPrice, inventory.SourceCSVImport, arrivedAt)
	if err != nil {
		return err
	}
	if err := repos.ArrivalRepo().Save(ctx, arrival); err != nil {
		return err
	}

	agg, err := repos.InventoryRepo().FindByItem(ctx, item.ID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		agg = inventory.NewInventory(item.ID, row.Quantity, row.UnitPrice)
	} else {
		if err := agg.Increase(row.Quantity); err != nil {
			return err
		}
		if row.UnitPrice != nil {
			agg.UnitPrice = row.UnitPrice
		}
	}
	if err := repos.InventoryRepo().Save(ctx, agg); err != nil {
		return err
	}

	result.Imported++
	return nil
}
