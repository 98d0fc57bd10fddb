package resultstore

import "time"

// Run represents one pipeline invocation in the run-history database
type Run struct {
	ID            string    `gorm:"primaryKey;column:id"`
	InputFile     string    `gorm:"column:input_file"`
	OutputDir     string    `gorm:"column:output_dir"`
	RangeMax      int       `gorm:"column:range_max"`
	OutlierFilter bool      `gorm:"column:outlier_filter"`
	Unmatched     string    `gorm:"column:unmatched_policy"`
	Measurements  int       `gorm:"column:measurements"`
	UnmatchedRows int       `gorm:"column:unmatched_rows"`
	Plots         int       `gorm:"column:plots"`
	Status        string    `gorm:"column:status"`
	Error         string    `gorm:"column:error"`
	StartedAt     time.Time `gorm:"column:started_at"`
	CompletedAt   time.Time `gorm:"column:completed_at"`
}

// TableName specifies the table name for Run
func (Run) TableName() string {
	return "runs"
}

// PlotRecord holds one plot's raw and normalized statistics for a run
type PlotRecord struct {
	ID            uint    `gorm:"primaryKey;autoIncrement;column:id"`
	RunID         string  `gorm:"column:run_id;index"`
	PlotID        int     `gorm:"column:plot_id"`
	Count         int     `gorm:"column:count"`
	Mean          float64 `gorm:"column:mean"`
	StdDev        float64 `gorm:"column:std_dev"`
	CVPercent     float64 `gorm:"column:cv_percent"`
	Entropy       float64 `gorm:"column:entropy"`
	NormStdDev    float64 `gorm:"column:norm_std_dev"`
	NormCVPercent float64 `gorm:"column:norm_cv_percent"`
	NormEntropy   float64 `gorm:"column:norm_entropy"`
}

// TableName specifies the table name for PlotRecord
func (PlotRecord) TableName() string {
	return "plot_records"
}
