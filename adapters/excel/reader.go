package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"

	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"; empty until detected
}

// NewDataReader creates a reader; the file type is sniffed from content on first read
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath}
}

// FileType returns the detected file type, detecting it if needed
func (r *DataReader) FileType() string {
	if r.fileType == "" {
		r.fileType = detectFileType(r.filePath)
	}
	return r.fileType
}

// detectFileType sniffs the content first and falls back to the extension
func detectFileType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	mtype, err := mimetype.DetectFile(path)
	if err == nil {
		switch {
		case mtype.Is(xlsxMIME):
			return fileTypeXLSX
		case mtype.Is("text/csv"), mtype.Is("text/plain"):
			return fileTypeCSV
		}
		log.Printf("[DataReader] Content of %s sniffed as %s, falling back to extension", path, mtype.String())
	}

	switch ext {
	case ".xlsx", ".xlsm":
		return fileTypeXLSX
	case ".csv", ".txt":
		return fileTypeCSV
	}
	return ""
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*Sheet, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("data file not found: %s", r.filePath)
	}

	fileType := r.FileType()
	log.Printf("[DataReader] Starting to read %s file: %s", fileType, r.filePath)

	switch fileType {
	case fileTypeCSV:
		return r.readCSVData()
	case fileTypeXLSX:
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type for %s", r.filePath)
	}
}

// readExcelData reads the first worksheet into a Sheet
func (r *DataReader) readExcelData() (*Sheet, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no worksheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	// GetRows keeps interior empty rows, so row i is sheet row i+1
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}
	return r.processRows(rows, lines)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*Sheet, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()

	// encoding/csv skips empty lines, so each record's line comes from FieldPos
	var rows [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows, lines)
}

// processRows converts raw string rows into a Sheet, skipping blank lines.
// lines[i] is the file line or sheet row that rows[i] came from.
func (r *DataReader) processRows(rows [][]string, lines []int) (*Sheet, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	var dataRows []Row
	var dataLines []int
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowData := make(Row, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
		dataLines = append(dataLines, lines[i])
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.FileType()), len(headers), len(dataRows))

	return &Sheet{
		Headers: headers,
		Rows:    dataRows,
		lines:   dataLines,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
