package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSaleRows is returned when the statement contains no Sale rows:
// there is nothing to reconcile.
var ErrNoSaleRows = errors.New("no sale rows found in settlement statement")

// MissingColumnsError reports every required statement column the input
// source failed to supply. It is fatal and checked once up front.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("settlement statement is missing required columns: %s",
		strings.Join(e.Columns, ", "))
}
