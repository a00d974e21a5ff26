package parser

import (
	"strconv"
	"strings"
)

// Wikitable markup tokens.
const (
	tokenTableOpen  = "{|"
	tokenTableClose = "|}"
)

// nextLine splits text at the first newline. The returned line has trailing
// whitespace removed; more is false once the input is exhausted.
func nextLine(text string) (line, rest string, more bool) {
	if text == "" {
		return "", "", false
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimRight(text[:i], " \t\r"), text[i+1:], true
	}
	return strings.TrimRight(text, " \t\r"), "", true
}

// parseSpanAttr consumes a quoted integer span attribute value, for example
// the `"2"` of `colspan="2"`, returning the value and the remaining line.
func parseSpanAttr(s, line string) (int, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return 0, "", NewFormatError(line, "span attribute is not quoted")
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return 0, "", NewFormatError(line, "unterminated span attribute")
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[1 : 1+end]))
	if err != nil || n < 1 {
		return 0, "", NewFormatError(line, "invalid span attribute value")
	}
	return n, strings.TrimLeft(s[end+2:], " \t"), nil
}

// ParseTable parses wikitable markup positioned at a (possibly
// whitespace-preceded) table-open token into a Grid. It consumes input up to
// and including the table-close token, or to the end of input, and returns
// the unconsumed trailing text so sequential tables in one document can be
// parsed in turn.
func ParseTable(text string) (*Grid, string, error) {
	rest := strings.TrimLeft(text, " \t\r\n")

	line, rest, more := nextLine(rest)
	if !more || !strings.HasPrefix(strings.TrimSpace(line), tokenTableOpen) {
		return nil, "", NewFormatError(line, "missing table open token")
	}

	var (
		rows     [][]*Cell
		cur      []*Cell
		active   []*Cell // spans from earlier rows still covering the cursor row
		lastCell *Cell
		x, y     int
		flushed  bool
	)

	flush := func() {
		rows = append(rows, cur)
		cur = nil
		flushed = true
	}

	for {
		line, rest, more = nextLine(rest)
		if !more {
			flush()
			rest = ""
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, tokenTableClose) {
			flush()
			break
		}

		isHeader := trimmed[0] == '!'
		isData := trimmed[0] == '|'
		if !isHeader && !isData {
			// Multi-line cell content continuation.
			if lastCell == nil {
				return nil, "", NewFormatError(line, "no cell to extend")
			}
			lastCell.Content += "\n" + trimmed
			continue
		}

		body := strings.TrimLeft(trimmed[1:], " \t")
		if strings.HasPrefix(body, "-") {
			if isHeader {
				return nil, "", NewFormatError(line, "header row separator is not part of the dialect")
			}
			// A stray separator before any cell is tolerated as a no-op.
			if !flushed && len(cur) == 0 {
				continue
			}
			flush()
			y++
			x = 0
			kept := active[:0]
			for _, c := range active {
				if c.Y+c.Rowspan > y {
					kept = append(kept, c)
				}
			}
			active = kept
			continue
		}

		// Advance the cursor past spans merged down from earlier rows.
		for moved := true; moved; {
			moved = false
			for _, c := range active {
				if c.covers(x, y) {
					x += c.Colspan
					moved = true
					break
				}
			}
		}

		rowspan, colspan := 1, 1
		for done := false; !done; {
			var err error
			switch {
			case strings.HasPrefix(body, "colspan="):
				colspan, body, err = parseSpanAttr(body[len("colspan="):], line)
			case strings.HasPrefix(body, "rowspan="):
				rowspan, body, err = parseSpanAttr(body[len("rowspan="):], line)
			default:
				done = true
			}
			if err != nil {
				return nil, "", err
			}
		}
		if strings.HasPrefix(body, "|") {
			body = strings.TrimLeft(body[1:], " \t")
		}

		cell := &Cell{
			Content:  strings.TrimSpace(body),
			IsHeader: isHeader,
			X:        x,
			Y:        y,
			Rowspan:  rowspan,
			Colspan:  colspan,
		}
		if rowspan > 1 {
			active = append(active, cell)
		}
		cur = append(cur, cell)
		lastCell = cell
		x += colspan
	}

	g := &Grid{rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		out := make([]Cell, len(row))
		for j, c := range row {
			out[j] = *c
		}
		g.rows[i] = out
	}
	return g, rest, nil
}
