package jsondelta

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FormatPrettyString is a convenience wrapper that renders to a string
// instead of an io.Writer.
func FormatPrettyString(result interface{}, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, result, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a recursive, indented text report of result to w. If
// colorTTY is true it adds ANSI color: green "+" for inserts, red "-" for
// deletes, blue "r"/"I" for replace/integer, cyan "d"/"dL" for text deltas,
// neutral for "O"/"L" recursion headers.
//
// result is whatever the top-level Diff returns: a bare Delta (the object/
// list diff case) or a single Operation (the scalar-level case — replace,
// integer delta, string/list_dmp text delta, or the empty Delta rendered as
// nothing).
func FormatPretty(w io.Writer, result interface{}, colorTTY bool) error {
	var colors map[Opcode]string
	if colorTTY {
		colors = map[Opcode]string{
			OpInsert:   "\x1b[32m",
			OpDelete:   "\x1b[31m",
			OpReplace:  "\x1b[34m",
			OpInteger:  "\x1b[34m",
			OpObject:   "\x1b[37m",
			OpList:     "\x1b[37m",
			OpListText: "\x1b[36m",
			OpText:     "\x1b[36m",
		}
	}

	switch v := result.(type) {
	case Delta:
		return formatPretty(w, v, 0, colors)
	case Operation:
		switch v.Op {
		case OpObject, OpList:
			return formatPretty(w, v.V.(Delta), 0, colors)
		case opNone:
			return nil
		default:
			return formatLeaf(w, v, "$", 0, colors)
		}
	default:
		return fmt.Errorf("jsondelta: unsupported diff result type %T", result)
	}
}

func formatLeaf(w io.Writer, op Operation, key string, indent int, colors map[Opcode]string) error {
	color, close := "", ""
	if colors != nil {
		color, close = colors[op.Op], ansiClose
	}
	val, err := formatOperand(op)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s%s%s%s: %s%s\n", strings.Repeat("  ", indent), color, op.Op, key, val, close)
	return err
}

const ansiClose = "\x1b[0m"

func formatPretty(w io.Writer, d Delta, indent int, colors map[Opcode]string) error {
	for _, key := range sortedDeltaKeys(d) {
		op := d[key]

		switch op.Op {
		case OpObject, OpList:
			color, close := "", ""
			if colors != nil {
				color, close = colors[op.Op], ansiClose
			}
			fmt.Fprintf(w, "%s%s%s%s:%s\n", strings.Repeat("  ", indent), color, op.Op, key, close)
			if err := formatPretty(w, op.V.(Delta), indent+1, colors); err != nil {
				return err
			}
		default:
			if err := formatLeaf(w, op, key, indent, colors); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatOperand(op Operation) (string, error) {
	switch v := op.V.(type) {
	case nil:
		return "", nil
	case Value:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func sortedDeltaKeys(d Delta) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatPrettyStats renders a one-line opcode tally, e.g.
// "+2 elements. 3 inserts. 1 delete. 2 updates."
func FormatPrettyStats(s Stats) string {
	return formatStats(s, false)
}

// FormatPrettyStatsColor is FormatPrettyStats with ANSI color.
func FormatPrettyStatsColor(s Stats) string {
	return formatStats(s, true)
}

func formatStats(s Stats, color bool) string {
	var neutral, insert, del, update, close string
	if color {
		neutral, insert, del, update, close = "\x1b[37m", "\x1b[32m", "\x1b[31m", "\x1b[34m", ansiClose
	}

	buf := &bytes.Buffer{}

	change := s.NodeChange()
	elColor, sign, word := insert, "+", "elements"
	switch {
	case change < 0:
		elColor, sign = del, ""
	case change == 0:
		elColor, sign = neutral, ""
	}
	if change == 1 || change == -1 {
		word = "element"
	}
	fmt.Fprintf(buf, "%s%s%d%s %s%s%s.", elColor, sign, change, close, neutral, word, close)

	plural := func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	}
	fmt.Fprintf(buf, " %s%d %s.%s", insert, s.Inserts, plural(s.Inserts, "insert", "inserts"), close)
	fmt.Fprintf(buf, " %s%d %s.%s", del, s.Deletes, plural(s.Deletes, "delete", "deletes"), close)
	fmt.Fprintf(buf, " %s%d %s.%s", update, s.Updates(), plural(s.Updates(), "update", "updates"), close)
	buf.WriteRune('\n')

	return buf.String()
}
