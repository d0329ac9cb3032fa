package calc

import (
	"bufio"
	"io"
	"math"

	perrors "github.com/pkg/errors"
)

// Epsilon is the tolerance used by Check: relative error when the larger magnitude
// is >= 1, absolute error otherwise.
const Epsilon = 1e-5

// Check recomputes the record and returns an error if the logged result mismatches.
func Check(rec Record) error {
	expected, err := rec.Op.Eval(rec.Args...)
	if err != nil {
		return err
	}
	if !Close(expected, rec.Result) {
		return perrors.Errorf("expected %s, got %s", formatFloat(expected), formatFloat(rec.Result))
	}
	return nil
}

// Close reports whether a and b are equal within Epsilon.
func Close(a, b float64) bool {
	if a == b {
		// Also covers both zero and same infinity.
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	mag := math.Max(math.Abs(a), math.Abs(b))
	diff := math.Abs(a - b)
	if mag >= 1 {
		diff /= mag
	}
	return diff <= Epsilon
}

// Mismatch is a failed line.
type Mismatch struct {
	// Line number, starting from 1.
	Line int

	Text string

	Err error
}

// Report is the result of Verify.
type Report struct {
	// Total number of lines checked.
	Total int

	Mismatches []Mismatch
}

// OK returns true if all lines passed.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Passed returns the number of passed lines.
func (r *Report) Passed() int {
	return r.Total - len(r.Mismatches)
}

// Verify checks every line of a result log. Lines which can't be parsed are
// reported as mismatches. The returned error is for reading errors only.
func Verify(r io.Reader) (*Report, error) {
	report := &Report{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		report.Total++
		text := scanner.Text()

		rec, err := ParseRecord(text)
		if err == nil {
			err = Check(rec)
		}
		if err != nil {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Line: report.Total,
				Text: text,
				Err:  err,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return report, perrors.Wrap(err, "read result log error")
	}
	return report, nil
}
