package excel

import (
	"fmt"
	"io"

	"abkit/internal/simulation"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	CumulativeSheet = "Cumulative"
	ExperimentSheet = "Experiment"

	colorUpper      = "00B050"
	colorLower      = "FF0000"
	colorCumulative = "FFC000"
)

// ChartWriter renders cumulative experiment tracks as spreadsheet line charts
type ChartWriter struct {
	file    *excelize.File
	written map[string]bool
}

// NewChartWriter creates a writer backed by a fresh workbook
func NewChartWriter() *ChartWriter {
	return &ChartWriter{
		file:    excelize.NewFile(),
		written: make(map[string]bool),
	}
}

// WriteCumulative writes step, cumulative, lower and upper columns and a line
// chart of the cumulative successes between the lower and upper bounds.
func (w *ChartWriter) WriteCumulative(track *simulation.CumulativeTrack) error {
	if err := w.writeColumns(CumulativeSheet, track, false); err != nil {
		return err
	}

	last := track.Len() + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			lineSeries(CumulativeSheet, "Upper Bound", "D", last, colorUpper),
			lineSeries(CumulativeSheet, "Lower Bound", "C", last, colorLower),
			lineSeries(CumulativeSheet, "Cumulative value of yes and no", "B", last, colorCumulative),
		},
		Title:     []excelize.RichTextRun{{Text: "Cumulative bounds"}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 720, Height: 420},
	}
	if err := w.file.AddChart(CumulativeSheet, "G2", chart); err != nil {
		return fmt.Errorf("failed to add cumulative chart: %w", err)
	}

	log.Debug().Int("steps", track.Len()).Str("sheet", CumulativeSheet).Msg("chart-written")
	return nil
}

// WriteExperiment writes the track with its expected count and a line chart
// of the experiment over time: cumulative successes against both limits.
func (w *ChartWriter) WriteExperiment(track *simulation.CumulativeTrack) error {
	if err := w.writeColumns(ExperimentSheet, track, true); err != nil {
		return err
	}

	last := track.Len() + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			lineSeries(ExperimentSheet, "Cumulative value of yes+no", "B", last, ""),
			lineSeries(ExperimentSheet, "Lower Bound", "C", last, ""),
			lineSeries(ExperimentSheet, "Upper Bound", "D", last, ""),
			lineSeries(ExperimentSheet, "Expected", "E", last, ""),
		},
		Title:     []excelize.RichTextRun{{Text: "Experiment over time"}},
		Legend:    excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{Width: 864, Height: 504},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Observations"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Successes"}}, MajorGridLines: true},
	}
	if err := w.file.AddChart(ExperimentSheet, "H2", chart); err != nil {
		return fmt.Errorf("failed to add experiment chart: %w", err)
	}

	log.Debug().Int("steps", track.Len()).Str("sheet", ExperimentSheet).Msg("chart-written")
	return nil
}

// Save writes the workbook to path
func (w *ChartWriter) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("workbook-saved")
	return nil
}

// WriteTo streams the workbook to out
func (w *ChartWriter) WriteTo(out io.Writer) (int64, error) {
	return w.file.WriteTo(out)
}

// Close releases the workbook resources
func (w *ChartWriter) Close() error {
	return w.file.Close()
}

func (w *ChartWriter) writeColumns(sheet string, track *simulation.CumulativeTrack, withExpected bool) error {
	if track == nil || track.Len() == 0 {
		return fmt.Errorf("cannot chart an empty track")
	}
	if w.written[sheet] {
		return fmt.Errorf("sheet %s already written", sheet)
	}
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Step", "Cumulative", "Lower", "Upper"}
	if withExpected {
		header = append(header, "Expected")
	}
	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < track.Len(); i++ {
		row := []interface{}{track.Steps[i], track.Cumulative[i], track.Lower[i], track.Upper[i]}
		if withExpected {
			row = append(row, track.Expected[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	w.written[sheet] = true
	return nil
}

// ensureSheet renames the default sheet on first use and appends afterwards
func (w *ChartWriter) ensureSheet(sheet string) error {
	if len(w.written) == 0 {
		return w.file.SetSheetName(w.file.GetSheetName(0), sheet)
	}
	_, err := w.file.NewSheet(sheet)
	return err
}

func lineSeries(sheet, name, column string, last int, color string) excelize.ChartSeries {
	series := excelize.ChartSeries{
		Name:       name,
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheet, last),
		Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, column, column, last),
		Line:       excelize.ChartLine{Width: 1},
	}
	if color != "" {
		series.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	return series
}
