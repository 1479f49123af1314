package fieldex

import "fmt"

// SheetError reports a sheet whose grid could not be processed. It is always
// recovered by the orchestrator: the sheet is reported on the run's
// Extraction and the rest of the workbook still runs.
type SheetError struct {
	Sheet string
	Stage string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.Sheet, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
