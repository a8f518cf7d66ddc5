package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// TraceRow is one line of a replay trace export.
type TraceRow struct {
	Frame     int    `csv:"frame"`
	ElapsedMS int64  `csv:"elapsed_ms"`
	Actions   string `csv:"actions"`
	Events    string `csv:"events"`
	Step      uint64 `csv:"step"`
	State     string `csv:"state"`
	Score     int    `csv:"score"`
	Length    int    `csv:"length"`
	HeadX     int    `csv:"head_x"`
	HeadY     int    `csv:"head_y"`
	Direction string `csv:"direction"`
	TargetX   int    `csv:"target_x"` // -1 when the board is full
	TargetY   int    `csv:"target_y"`
}

// WriteTrace writes rows as CSV with a header line.
func WriteTrace(w io.Writer, rows []TraceRow) error {
	if rows == nil {
		rows = []TraceRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WriteTraceFile writes rows to a new CSV file at path.
func WriteTraceFile(path string, rows []TraceRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := WriteTrace(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
