package jsondelta

import (
	"encoding/json"
	"strings"
)

// arrayToLines serializes a list of Values as a newline-delimited JSON
// stream: each element is JSON-marshaled, then terminated with "\n". This
// is the framing TEXTDIFF's line-mode diff operates over for the "dL"
// (list text delta) opcode.
//
// Elements whose JSON encoding contains an embedded newline (for example a
// multi-line string) would break the one-record-per-line framing, so they
// are rejected with ErrEmbeddedNewline rather than silently corrupting the
// line count.
func arrayToLines(vs []Value) (string, error) {
	var b strings.Builder
	for _, v := range vs {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		if strings.ContainsRune(string(raw), '\n') {
			return "", ErrEmbeddedNewline
		}
		b.Write(raw)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// linesToArray parses the newline-delimited JSON stream produced by
// arrayToLines back into a list of Values. Empty lines are skipped, per the
// serialization contract.
func linesToArray(text string) ([]Value, error) {
	lines := strings.Split(text, "\n")
	vs := make([]Value, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		var v Value
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}
