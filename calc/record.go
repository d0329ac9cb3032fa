package calc

import (
	"strconv"
	"strings"

	perrors "github.com/pkg/errors"
)

// Record is one line of the result log.
type Record struct {
	Op     Op
	Args   []float64
	Result float64
}

// String formats the record as "<op> <arg1> [<arg2>] = <result>".
func (rec Record) String() string {
	b := &strings.Builder{}
	b.WriteString(string(rec.Op))
	for _, arg := range rec.Args {
		b.WriteByte(' ')
		b.WriteString(formatFloat(arg))
	}
	b.WriteString(" = ")
	b.WriteString(formatFloat(rec.Result))
	return b.String()
}

// ParseRecord parses a line produced by Record.String.
func ParseRecord(line string) (Record, error) {
	lhs, rhs, found := strings.Cut(line, "=")
	if !found {
		return Record{}, perrors.Errorf("missing '=' in %q", line)
	}

	fields := strings.Fields(lhs)
	if len(fields) == 0 {
		return Record{}, perrors.Errorf("missing operation in %q", line)
	}

	op, err := ParseOp(fields[0])
	if err != nil {
		return Record{}, err
	}
	if len(fields)-1 != op.Arity() {
		return Record{}, perrors.Wrapf(ErrArity, "%s expects %d, got %d", op, op.Arity(), len(fields)-1)
	}

	rec := Record{
		Op:   op,
		Args: make([]float64, 0, op.Arity()),
	}
	for _, field := range fields[1:] {
		arg, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Record{}, perrors.Wrapf(err, "bad argument in %q", line)
		}
		rec.Args = append(rec.Args, arg)
	}

	rec.Result, err = strconv.ParseFloat(strings.TrimSpace(rhs), 64)
	if err != nil {
		return Record{}, perrors.Wrapf(err, "bad result in %q", line)
	}
	return rec, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
