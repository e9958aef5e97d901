package utils

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// StdinPath selects standard input in place of a file
const StdinPath = "-"

// Statement is one import statement read from input, with the line it starts on
type Statement struct {
	Line int
	Text string
}

// OpenInput opens path for reading; "" and "-" select stdin
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == StdinPath {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// ReadStatements reads one statement per line. Comments and blank lines are
// dropped. A parenthesized name list may span several lines and is
// returned as one statement.
func ReadStatements(r io.Reader) ([]Statement, error) {
	var (
		statements []Statement
		pending    []string
		start      int
		depth      int
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}
		if len(pending) == 0 {
			start = lineNo
		}

		pending = append(pending, line)
		depth += parenDepth(line)
		if depth > 0 {
			continue
		}

		statements = append(statements, Statement{Line: start, Text: strings.Join(pending, "\n")})
		pending = nil
		depth = 0
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// an unclosed list is still handed over so the parser can reject it
	if len(pending) > 0 {
		statements = append(statements, Statement{Line: start, Text: strings.Join(pending, "\n")})
	}
	return statements, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parenDepth(line string) int {
	return strings.Count(line, "(") - strings.Count(line, ")")
}
