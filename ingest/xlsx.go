package ingest

import (
	"io"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"

	"retailpulse/rfm"
)

// ReadTransactionsXLSX parses the active sheet of an xlsx export. The
// header contract is the same as the csv path.
func ReadTransactionsXLSX(r io.Reader) ([]rfm.TransactionRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open xlsx")
	}

	sheet := file.GetSheetName(file.GetActiveSheetIndex())
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}

	return transactionsFromRows(rows)
}
