package recorder

import "StockTracker/internal/model"

// Triggers identify what started a report run.
const (
	TriggerCommand  = "COMMAND"
	TriggerSchedule = "SCHEDULE"
	TriggerCLI      = "CLI"
)

// Recorder persists report runs for later analysis. Nothing recorded is
// read back by the tracker itself.
type Recorder interface {
	// RecordReport stores one run and returns its run ID.
	RecordReport(r *model.Report, trigger string) (string, error)
	Close() error
}
