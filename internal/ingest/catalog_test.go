package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"wbprofit/pkg/contracts/domain"
)

func TestReadPriceCatalog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.PriceCatalog
		wantErr error
	}{
		{
			name:  "basic catalog with comma decimals",
			input: "id товара;цена\n123;50,5\n456;75\n",
			want:  domain.PriceCatalog{"123": 50.5, "456": 75},
		},
		{
			name:  "duplicate identifiers, last wins",
			input: "id товара;цена\n456;75\n456;80\n",
			want:  domain.PriceCatalog{"456": 80},
		},
		{
			name:  "identifier normalization strips leading zeros and fraction",
			input: "id товара;цена\n00123;10\n124.0;20\n",
			want:  domain.PriceCatalog{"123": 10, "124": 20},
		},
		{
			name:  "alternate price column alias",
			input: "id товара;закупка\n7;12,34\n",
			want:  domain.PriceCatalog{"7": 12.34},
		},
		{
			name:  "unparseable and negative rows skipped",
			input: "id товара;цена\nabc;10\n8;oops\n9;-5\n10;3\n",
			want:  domain.PriceCatalog{"10": 3},
		},
		{
			name:  "short rows skipped",
			input: "id товара;цена\n11\n12;6\n",
			want:  domain.PriceCatalog{"12": 6},
		},
		{
			name:    "missing price column",
			input:   "id товара;наименование\n1;шар\n",
			want:    domain.PriceCatalog{},
			wantErr: ErrPriceCatalogUnusable,
		},
		{
			name:    "missing identifier column",
			input:   "артикул;цена\n1;10\n",
			want:    domain.PriceCatalog{},
			wantErr: ErrPriceCatalogUnusable,
		},
		{
			name:    "empty input",
			input:   "",
			want:    domain.PriceCatalog{},
			wantErr: ErrPriceCatalogUnusable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := ReadPriceCatalog(strings.NewReader(tt.input), nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, catalog)
		})
	}
}

func TestLoadPriceCatalog_Windows1251(t *testing.T) {
	// Supplier exports arrive in cp1251; encode the fixture the same way.
	encoded, err := charmap.Windows1251.NewEncoder().String("id товара;цена\n1001;10,5\n1002;20\n")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))

	catalog, err := LoadPriceCatalog(path, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PriceCatalog{"1001": 10.5, "1002": 20}, catalog)
}

func TestLoadPriceCatalog_MissingFile(t *testing.T) {
	_, err := LoadPriceCatalog(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}
