package domain

// Reason classifies a settlement statement line and determines which
// allocation rule applies to it.
type Reason string

const (
	ReasonSale      Reason = "sale"
	ReasonLogistics Reason = "logistics"
	ReasonPenalty   Reason = "penalty"
	ReasonStorage   Reason = "storage"
	ReasonOther     Reason = "other"
)

// Canonical statement column names. The ingest layer maps marketplace header
// labels onto these; the engine only ever sees canonical names.
const (
	ColSupplierArticle  = "supplier_article"
	ColReason           = "reason"
	ColQuantity         = "quantity"
	ColPayoutAmount     = "payout_amount"
	ColLogisticsCost    = "logistics_cost"
	ColPenaltyCost      = "penalty_cost"
	ColStorageCost      = "storage_cost"
	ColNomenclatureCode = "nomenclature_code"
	ColBarcode          = "barcode"
)

// RequiredStatementColumns lists the columns a settlement statement must
// supply before reconciliation can start. Penalty and storage columns are
// optional: statements without them simply carry zero costs there.
func RequiredStatementColumns() []string {
	return []string{
		ColSupplierArticle,
		ColReason,
		ColQuantity,
		ColPayoutAmount,
		ColLogisticsCost,
		ColNomenclatureCode,
		ColBarcode,
	}
}

// StatementRow is one line of a marketplace settlement statement.
// Cost fields are meaningful only for rows whose Reason matches; the rest
// read as zero. Rows are immutable once read.
type StatementRow struct {
	SupplierArticle  string  `json:"supplier_article"`
	Reason           Reason  `json:"reason"`
	RawReason        string  `json:"raw_reason,omitempty"`
	Quantity         int64   `json:"quantity"`
	PayoutAmount     float64 `json:"payout_amount"`
	LogisticsCost    float64 `json:"logistics_cost"`
	PenaltyCost      float64 `json:"penalty_cost"`
	StorageCost      float64 `json:"storage_cost"`
	NomenclatureCode string  `json:"nomenclature_code"`
	Barcode          string  `json:"barcode"`
}

// Statement is an ordered settlement statement together with the set of
// canonical columns its source actually supplied. The column set is what
// lets the classifier report every missing required field up front instead
// of silently reading zero values.
type Statement struct {
	Rows    []StatementRow
	Columns map[string]bool
}

// NewStatement builds a Statement for in-memory callers, marking every
// canonical column as present.
func NewStatement(rows []StatementRow) Statement {
	cols := make(map[string]bool)
	for _, c := range []string{
		ColSupplierArticle, ColReason, ColQuantity, ColPayoutAmount,
		ColLogisticsCost, ColPenaltyCost, ColStorageCost,
		ColNomenclatureCode, ColBarcode,
	} {
		cols[c] = true
	}
	return Statement{Rows: rows, Columns: cols}
}

// HasColumn reports whether the statement source supplied the given
// canonical column.
func (s Statement) HasColumn(name string) bool {
	return s.Columns[name]
}
