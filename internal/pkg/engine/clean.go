package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedSample marks an input line that could not be turned into
// a numeric sample. The caller is expected to drop the line and keep reading.
var ErrMalformedSample = errors.New("malformed sample")

// Sample is the cleaned numeric payload of a single input line.
// Single-field modes leave Secondary at zero.
type Sample struct {
	Primary   float64
	Secondary float64
}

// CSI sequences plus lone two-byte escapes, the kind of junk serial
// bootloaders and debug firmware like to mix into the data stream.
var ansiEscape = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[ -/]*[@-~]|[@-_])`)

// Cleaner normalizes one raw transport line into a Sample.
type Cleaner struct {
	prefixes []string // noise literals stripped after escape removal
	fields   int      // required numeric fields, 1 or 2
}

func NewCleaner(noisePrefixes []string, fields int) *Cleaner {
	if fields < 1 {
		fields = 1
	}
	if fields > 2 {
		fields = 2
	}
	return &Cleaner{prefixes: noisePrefixes, fields: fields}
}

// Clean strips terminal escapes and known noise prefixes, splits the line on
// commas or whitespace and parses the required number of float fields.
// Tokens may carry embedded junk characters, they are filtered down to
// digits, decimal point and minus sign before parsing.
func (c *Cleaner) Clean(line string) (Sample, error) {
	line = ansiEscape.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)

	for _, prefix := range c.prefixes {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}

	line = strings.ReplaceAll(line, ",", " ")
	tokens := strings.Fields(line)
	if len(tokens) < c.fields {
		return Sample{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedSample, c.fields, len(tokens))
	}

	var values [2]float64
	for i := 0; i < c.fields; i++ {
		filtered := filterNumeric(tokens[i])
		if filtered == "" {
			return Sample{}, fmt.Errorf("%w: field %d (\"%s\") holds no numeric data", ErrMalformedSample, i, tokens[i])
		}
		v, err := strconv.ParseFloat(filtered, 64)
		if err != nil {
			return Sample{}, fmt.Errorf("%w: field %d (\"%s\"): %s", ErrMalformedSample, i, tokens[i], err)
		}
		values[i] = v
	}

	return Sample{Primary: values[0], Secondary: values[1]}, nil
}

func filterNumeric(token string) string {
	var b strings.Builder
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
