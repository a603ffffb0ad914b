package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"wbprofit/pkg/contracts/domain"
)

// statementColumnAliases maps canonical column names to the header labels
// marketplace statement exports use for them. Matching is trimmed and
// case-insensitive.
var statementColumnAliases = map[string][]string{
	domain.ColSupplierArticle:  {"Артикул поставщика"},
	domain.ColReason:           {"Обоснование для оплаты"},
	domain.ColQuantity:         {"Кол-во"},
	domain.ColPayoutAmount:     {"К перечислению Продавцу за реализованный Товар", "К перечислению за товар"},
	domain.ColLogisticsCost:    {"Услуги по доставке товара покупателю"},
	domain.ColPenaltyCost:      {"Общая сумма штрафов", "Штрафы"},
	domain.ColStorageCost:      {"Хранение"},
	domain.ColNomenclatureCode: {"Код номенклатуры"},
	domain.ColBarcode:          {"Баркод"},
}

// reasonLabels maps the statement's payment justification labels to reason
// codes. Anything else classifies as Other and never enters the engine.
var reasonLabels = map[string]domain.Reason{
	"продажа":   domain.ReasonSale,
	"логистика": domain.ReasonLogistics,
	"штраф":     domain.ReasonPenalty,
	"хранение":  domain.ReasonStorage,
}

// ParseStatement reads a settlement statement workbook and converts it into
// typed rows. The header row is located dynamically, so leading banner rows
// in the export do not matter. Per-row numeric faults coerce to zero; a
// statement with missing required columns still parses, the engine's
// classifier reports it.
func ParseStatement(path string, logger *slog.Logger) (domain.Statement, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Statement{}, fmt.Errorf("open statement workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Statement{}, fmt.Errorf("statement workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Statement{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerRow, columnMap := locateHeader(rows)
	if headerRow < 0 {
		return domain.Statement{}, fmt.Errorf("could not find statement header row in sheet %q", sheets[0])
	}

	logger.Debug("statement header located",
		slog.String("sheet", sheets[0]),
		slog.Int("header_row", headerRow),
		slog.Int("mapped_columns", len(columnMap)))

	stmt := domain.Statement{Columns: make(map[string]bool, len(columnMap))}
	for col := range columnMap {
		stmt.Columns[col] = true
	}

	cell := func(row []string, col string) string {
		if idx, ok := columnMap[col]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rawReason := cell(row, domain.ColReason)
		stmt.Rows = append(stmt.Rows, domain.StatementRow{
			SupplierArticle:  cell(row, domain.ColSupplierArticle),
			Reason:           parseReason(rawReason),
			RawReason:        rawReason,
			Quantity:         parseQuantity(cell(row, domain.ColQuantity)),
			PayoutAmount:     parseDecimal(cell(row, domain.ColPayoutAmount)),
			LogisticsCost:    parseDecimal(cell(row, domain.ColLogisticsCost)),
			PenaltyCost:      parseDecimal(cell(row, domain.ColPenaltyCost)),
			StorageCost:      parseDecimal(cell(row, domain.ColStorageCost)),
			NomenclatureCode: cell(row, domain.ColNomenclatureCode),
			Barcode:          cell(row, domain.ColBarcode),
		})
	}

	logger.Info("settlement statement parsed",
		slog.String("path", path),
		slog.Int("rows", len(stmt.Rows)),
		slog.Int("columns", len(stmt.Columns)))

	return stmt, nil
}

// locateHeader scans for the first row that maps at least three canonical
// columns and returns its index together with the column position map.
func locateHeader(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columnMap := make(map[string]int)
		for j, header := range row {
			label := strings.ToLower(strings.TrimSpace(header))
			if label == "" {
				continue
			}
			for canonical, aliases := range statementColumnAliases {
				if _, mapped := columnMap[canonical]; mapped {
					continue
				}
				for _, alias := range aliases {
					if label == strings.ToLower(alias) {
						columnMap[canonical] = j
						break
					}
				}
			}
		}
		if len(columnMap) >= 3 {
			return i, columnMap
		}
	}
	return -1, nil
}

func parseReason(raw string) domain.Reason {
	if reason, ok := reasonLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return reason
	}
	return domain.ReasonOther
}

// parseDecimal coerces statement numerics leniently: comma decimal
// separators and space or NBSP digit grouping are accepted, anything
// unparseable reads as zero.
func parseDecimal(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseQuantity(raw string) int64 {
	return int64(parseDecimal(raw))
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
