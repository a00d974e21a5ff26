package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
)

// hexIDPattern matches the legacy short-form packet identifier, a bare hex
// literal like "0x2D".
var hexIDPattern = regexp.MustCompile(`^0[xX][0-9A-Fa-f]+$`)

// The identifier keys of the long-form identifier cell.
const (
	idKeyProtocol = "protocol"
	idKeyResource = "resource"
)

// ParsePacket extracts one packet schema from a packet subsection's raw
// text. Lines before the table accumulate as the packet's preamble; the
// first table must carry the dialect's packet-id header and exactly one
// field-name and one field-type header group. A SymmetryError from field
// inference is returned as-is so callers can skip just this packet.
func ParsePacket(name, text string, cfg Config) (*models.Packet, error) {
	preamble, tableText, found := splitAtTable(text)
	if !found {
		return nil, fmt.Errorf("packet %q: %w", name, ErrNoTable)
	}

	grid, _, err := ParseTable(tableText)
	if err != nil {
		return nil, fmt.Errorf("packet %q: %w", name, err)
	}
	v := grid.View()

	header, ok := v.CellAt(0, 0)
	if !ok || strings.TrimSpace(header.Content) != cfg.PacketIDHeader {
		return nil, &DialectError{Subject: name, Reason: "table does not start with the packet-id header"}
	}

	idCell, ok := v.CellAt(0, 1)
	if !ok {
		return nil, &DialectError{Subject: name, Reason: "missing packet identifier cell"}
	}
	ids, err := parseIdentifier(name, idCell.Content)
	if err != nil {
		return nil, err
	}

	nameView, err := columnView(v, grid.Height(), name, cfg.FieldNameHeader)
	if err != nil {
		return nil, err
	}
	typeView, err := columnView(v, grid.Height(), name, cfg.FieldTypeHeader)
	if err != nil {
		return nil, err
	}

	fields, err := InferFields(nameView, typeView, cfg)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		// A sentinel table means "zero fields", and that is a list, not an
		// absent one: keep JSON output a [] rather than null.
		fields = []models.Field{}
	}

	return &models.Packet{
		Name:     name,
		Preamble: strings.TrimSpace(preamble),
		Protocol: ids[idKeyProtocol],
		Resource: ids[idKeyResource],
		Fields:   fields,
	}, nil
}

// splitAtTable separates the leading non-table lines from the table markup.
func splitAtTable(text string) (preamble, table string, found bool) {
	rest := text
	var lines []string
	for {
		line, next, more := nextLine(rest)
		if !more {
			break
		}
		if strings.HasPrefix(strings.TrimSpace(line), tokenTableOpen) {
			return strings.Join(lines, "\n"), rest, true
		}
		lines = append(lines, line)
		rest = next
	}
	return strings.Join(lines, "\n"), "", false
}

// columnView locates the single header cell matching the wanted literal and
// returns the column view spanning from row 1 to the table's bottom, as wide
// as the header's colspan.
func columnView(v View, height int, packet, header string) (View, error) {
	matches := v.SearchHeaders(func(s string) bool {
		return strings.TrimSpace(s) == header
	})
	if len(matches) != 1 {
		return View{}, &DialectError{
			Subject: packet,
			Reason:  fmt.Sprintf("expected exactly one %q header, found %d", header, len(matches)),
		}
	}
	h := matches[0]
	return v.Crop(h.X, 1, h.Colspan, height-1), nil
}

// parseIdentifier decodes the packet identifier cell. The legacy short form
// is a bare hex literal that maps directly to the protocol id. The long form
// is a sequence of ''key:'' <code>value</code> groups separated by <br/>
// markers; the protocol key is mandatory, resource is optional.
func parseIdentifier(packet, content string) (map[string]string, error) {
	s := strings.TrimSpace(content)
	if hexIDPattern.MatchString(s) {
		return map[string]string{idKeyProtocol: s}, nil
	}

	ids := make(map[string]string)
	for s != "" {
		rest, ok := strings.CutPrefix(s, "''")
		if !ok {
			return nil, &DialectError{Subject: packet, Reason: "identifier group does not start with a key"}
		}
		end := strings.Index(rest, "''")
		if end < 0 {
			return nil, &DialectError{Subject: packet, Reason: "unterminated identifier key"}
		}
		key := strings.TrimSuffix(strings.TrimSpace(rest[:end]), ":")
		s = skipBreaks(rest[end+2:])

		rest, ok = strings.CutPrefix(s, "<code>")
		if !ok {
			return nil, &DialectError{Subject: packet, Reason: fmt.Sprintf("identifier key %q has no value", key)}
		}
		end = strings.Index(rest, "</code>")
		if end < 0 {
			return nil, &DialectError{Subject: packet, Reason: fmt.Sprintf("unterminated value for identifier key %q", key)}
		}
		ids[key] = strings.TrimSpace(rest[:end])
		s = skipBreaks(rest[end+len("</code>"):])
	}

	if _, ok := ids[idKeyProtocol]; !ok {
		return nil, &DialectError{Subject: packet, Reason: "identifier cell has no protocol key"}
	}
	return ids, nil
}

// skipBreaks strips leading whitespace and <br> line-break markers.
func skipBreaks(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "<br/>"):
			s = s[len("<br/>"):]
		case strings.HasPrefix(s, "<br />"):
			s = s[len("<br />"):]
		case strings.HasPrefix(s, "<br>"):
			s = s[len("<br>"):]
		default:
			return s
		}
	}
}
