// Package csvio reads raw-day CSV dumps and writes the finished report. The
// raw format is one row per date with a "date" column plus one column per
// feed field; the report format matches the published davening-times sheet.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
)

// rawDateLayouts covers the date formats raw dumps have used.
var rawDateLayouts = [...]string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// FileSource serves raw days out of a CSV dump, for offline runs.
type FileSource struct {
	days map[string]model.RawDay
}

// ReadRawDays loads a raw-day CSV into a FileSource. Dates are pinned at
// 03:00 in loc, matching how fetched days are localized.
func ReadRawDays(r io.Reader, loc *time.Location) (*FileSource, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading raw csv header: %w", err)
	}

	dateCol := -1
	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = model.NormalizeField(name)
		if fields[i] == "date" {
			dateCol = i
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("raw csv has no date column")
	}

	src := &FileSource{days: map[string]model.RawDay{}}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading raw csv: %w", err)
		}

		date, err := parseRawDate(row[dateCol], loc)
		if err != nil {
			return nil, err
		}

		times := make(map[string]string, len(row))
		for i, value := range row {
			if i == dateCol {
				continue
			}
			times[fields[i]] = value
		}
		src.days[date.Format("2006-01-02")] = model.RawDay{Date: date, Times: times}
	}
	return src, nil
}

// OpenRawDays is ReadRawDays over a file path.
func OpenRawDays(path string, loc *time.Location) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening raw csv: %w", err)
	}
	defer f.Close()
	return ReadRawDays(f, loc)
}

// RawDay returns the loaded day for date, failing when the dump does not
// cover it.
func (s *FileSource) RawDay(_ context.Context, date time.Time) (model.RawDay, error) {
	day, ok := s.days[date.Format("2006-01-02")]
	if !ok {
		return model.RawDay{}, fmt.Errorf("no raw data for %s", date.Format("2006-01-02"))
	}
	return day, nil
}

func parseRawDate(text string, loc *time.Location) (time.Time, error) {
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 3, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized raw date %q", text)
}

// reportHeader is the published column order.
var reportHeader = []string{
	"note", "civ_date", "weekday", "heb_date",
	"shachris", "shema", "mincha", "maariv", "candles", "ending",
}

// WriteReport writes the finished schedule. The mincha column carries the
// observed value, after every cross-day adjustment.
func WriteReport(w io.Writer, days []*model.Day) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, d := range days {
		row := []string{
			d.Reason,
			d.Date.Format("2006/01/02"),
			d.Weekday,
			d.HebDate,
			d.Shachris,
			d.Shema,
			d.MinchaObserved,
			d.Maariv,
			d.Candles,
			d.Ending,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing report row %s: %w", d.Date.Format("2006-01-02"), err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteReportFile is WriteReport over a file path.
func WriteReportFile(path string, days []*model.Day) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := WriteReport(f, days); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
