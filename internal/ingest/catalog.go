package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"wbprofit/pkg/contracts/domain"
)

// ErrPriceCatalogUnusable marks a catalog source whose identifier or price
// column could not be located. It is non-fatal: callers proceed with an
// empty catalog and every purchase price resolves to zero.
var ErrPriceCatalogUnusable = errors.New("price catalog identifier or price column not found")

var (
	catalogIDAliases    = []string{"id товара"}
	catalogPriceAliases = []string{"цена", "закупка", "цена, руб."}
)

// LoadPriceCatalog reads the supplier price list CSV (semicolon separated,
// Windows-1251 encoded) and builds the external-ID to purchase-price map.
func LoadPriceCatalog(path string, logger *slog.Logger) (domain.PriceCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price catalog: %w", err)
	}
	defer f.Close()

	catalog, err := ReadPriceCatalog(transform.NewReader(f, charmap.Windows1251.NewDecoder()), logger)
	if err != nil {
		return catalog, err
	}
	if logger != nil {
		logger.Info("price catalog loaded",
			slog.String("path", path),
			slog.Int("entries", len(catalog)))
	}
	return catalog, nil
}

// ReadPriceCatalog parses an already-decoded catalog stream. The identifier
// and price columns are located through known header aliases; when either is
// missing the function returns an empty catalog and ErrPriceCatalogUnusable
// so the report can still run in degraded mode. Duplicate identifiers
// overwrite, last entry wins.
func ReadPriceCatalog(r io.Reader, logger *slog.Logger) (domain.PriceCatalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return domain.PriceCatalog{}, ErrPriceCatalogUnusable
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	idCol := findColumn(header, catalogIDAliases)
	priceCol := findColumn(header, catalogPriceAliases)
	if idCol < 0 || priceCol < 0 {
		logger.Warn("price catalog columns not identified, proceeding with empty catalog",
			slog.Bool("id_column_found", idCol >= 0),
			slog.Bool("price_column_found", priceCol >= 0))
		return domain.PriceCatalog{}, ErrPriceCatalogUnusable
	}

	catalog := domain.PriceCatalog{}
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed lines are a fact of life in supplier exports.
			skipped++
			continue
		}
		if idCol >= len(record) || priceCol >= len(record) {
			skipped++
			continue
		}

		key, ok := domain.NormalizeExternalID(record[idCol])
		if !ok {
			skipped++
			continue
		}
		price, err := parseCatalogPrice(record[priceCol])
		if err != nil || price < 0 {
			skipped++
			continue
		}
		catalog[key] = price
	}

	if skipped > 0 {
		logger.Debug("price catalog rows skipped", slog.Int("row_count", skipped))
	}
	return catalog, nil
}

func findColumn(header []string, aliases []string) int {
	for i, label := range header {
		normalized := strings.ToLower(strings.TrimSpace(label))
		for _, alias := range aliases {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

func parseCatalogPrice(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(s, 64)
}
