package report

import "context"

// LowStockRow una fila del reporte de reposición.
type LowStockRow struct {
	Name     string
	Category string
	Unit     string
	Stock    int
	MinStock int
}

// LowStockPDFGenerator puerto para renderizar el reporte de stock bajo como PDF.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, rows []LowStockRow) ([]byte, error)
}
