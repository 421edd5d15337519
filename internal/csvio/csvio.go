// Package csvio loads the seven input CSV contracts (spec §6) into
// internal/entity slices, reporting schema problems through
// validation.Result: a row with a problem is skipped and reported, and the
// rows that parsed are still returned. Grounded on the
// teacher's validation.Result usage pattern (one Result threaded through a
// load pipeline, fatal on schema errors, non-fatal thereafter) and on
// original_source/src/config_loader.py's "reject legacy keys" behavior for
// the rejected required_staff column name. encoding/csv (stdlib) is used
// here because no CSV-specific third-party library appears anywhere in the
// retrieved example pack.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/validation"
)

// reader wraps a csv.Reader with the header-index lookup every loader needs.
type reader struct {
	r       *csv.Reader
	header  []string
	idx     map[string]int
	vr      *validation.Result
	file    string
}

func newReader(r io.Reader, file string, vr *validation.Result) (*reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csvio: %s: reading header: %w", file, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return &reader{r: cr, header: header, idx: idx, vr: vr, file: file}, nil
}

func (rd *reader) requireColumns(required ...string) bool {
	ok := true
	for _, c := range required {
		if _, found := rd.idx[c]; !found {
			rd.vr.AddError(validation.MissingColumn, c, "%s: missing required column %q", rd.file, c)
			ok = false
		}
	}
	return ok
}

func (rd *reader) rejectLegacy(legacy string) {
	if _, found := rd.idx[legacy]; found {
		rd.vr.AddError(validation.LegacyFieldRejected, legacy, "%s: legacy column %q is no longer accepted", rd.file, legacy)
	}
}

func (rd *reader) col(row []string, name string) string {
	i, ok := rd.idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (rd *reader) rows() ([][]string, error) {
	var out [][]string
	for {
		row, err := rd.r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csvio: %s: %w", rd.file, err)
		}
		out = append(out, row)
	}
}

func parseFloat(rd *reader, rowIdx int, field, raw string, vr *validation.Result) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not a number", rd.file, rowIdx, raw)
		return 0
	}
	return v
}

func parseIntField(rd *reader, rowIdx int, field, raw string, vr *validation.Result) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not an integer", rd.file, rowIdx, raw)
		return 0
	}
	return v
}

func parseDay(rd *reader, rowIdx int, field, raw string, vr *validation.Result) time.Time {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not a YYYY-MM-DD date", rd.file, rowIdx, raw)
		return time.Time{}
	}
	return d
}

// parseClock parses "HH:MM" or the special "24:00" (meaning end-of-day,
// returned as minute 1440) into a minute-of-day value.
func parseClock(rd *reader, rowIdx int, field, raw string, vr *validation.Result) int {
	if raw == "24:00" {
		return 1440
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not HH:MM", rd.file, rowIdx, raw)
		return 0
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 24 || m < 0 || m > 59 {
		vr.AddError(validation.IllegalValue, field, "%s: row %d: %q is not HH:MM", rd.file, rowIdx, raw)
		return 0
	}
	return h*60 + m
}

func splitPipe(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitComma(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
