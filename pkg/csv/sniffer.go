// Package csv provides CSV dialect detection.
package csv

import "strings"

// Sniffer detects the field delimiter of a CSV sample. For best results,
// provide at least 2-3 lines of data.
type Sniffer struct {
	sample    string
	delimiter rune
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of CSV data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// DetectDelimiter returns the detected field delimiter.
// Candidates checked: comma, tab, semicolon, pipe.
func (s *Sniffer) DetectDelimiter() rune {
	if !s.analyzed {
		s.delimiter = s.detectDelimiter()
		s.analyzed = true
	}
	return s.delimiter
}

func (s *Sniffer) detectDelimiter() rune {
	if s.sample == "" {
		return ','
	}

	delimiters := []rune{',', '\t', ';', '|'}
	scores := make(map[rune]int)

	lines := strings.Split(s.sample, "\n")

	// Score each candidate by its per-line count, with a bonus when the
	// count is consistent across lines.
	for _, delim := range delimiters {
		counts := make([]int, 0, len(lines))
		for _, line := range lines {
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				continue
			}
			counts = append(counts, countDelimiter(line, delim))
		}
		if len(counts) == 0 || counts[0] == 0 {
			continue
		}
		consistent := true
		for i := 1; i < len(counts); i++ {
			if counts[i] != counts[0] {
				consistent = false
				break
			}
		}
		if consistent {
			scores[delim] = counts[0] * 10
		} else {
			scores[delim] = counts[0]
		}
	}

	best := ','
	bestScore := 0
	for _, delim := range delimiters {
		if scores[delim] > bestScore {
			best = delim
			bestScore = scores[delim]
		}
	}
	return best
}

// countDelimiter counts occurrences of a delimiter, ignoring quoted
// sections.
func countDelimiter(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		if ch == '"' {
			inQuotes = !inQuotes
		} else if ch == delim && !inQuotes {
			count++
		}
	}
	return count
}
