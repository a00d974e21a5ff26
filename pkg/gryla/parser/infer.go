package parser

import (
	"fmt"
	"strings"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
)

// Config carries the dialect knobs the parser needs. Zero values fall back
// to the defaults of DefaultConfig.
type Config struct {
	// PacketIDHeader is the literal content required in cell (0,0).
	PacketIDHeader string
	// FieldNameHeader is the header naming the field-name column group.
	FieldNameHeader string
	// FieldTypeHeader is the header naming the field-type column group.
	FieldTypeHeader string
	// NoFieldsMarker is the sanctioned sentinel for packets without fields.
	NoFieldsMarker string
	// MaxDepth is the maximum number of nested field-list levels; a flat
	// table is depth 1. Inference beyond it fails with ErrDepthExceeded.
	MaxDepth int
	// ResolveType converts a raw type-cell text into a type node. Nil wraps
	// the text in a LeafType unresolved.
	ResolveType func(string) models.TypeNode
}

// DefaultConfig returns the dialect configuration observed on the wiki.
func DefaultConfig() Config {
	return Config{
		PacketIDHeader:  "Packet ID",
		FieldNameHeader: "Field Name",
		FieldTypeHeader: "Field Type",
		NoFieldsMarker:  "''no fields''",
		MaxDepth:        32,
	}
}

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultConfig().MaxDepth
}

func (c Config) resolve(text string) models.TypeNode {
	if c.ResolveType != nil {
		return c.ResolveType(text)
	}
	return models.LeafType{Text: text}
}

func (c Config) isSentinel(cell Cell) bool {
	return strings.TrimSpace(cell.Content) == c.NoFieldsMarker
}

// InferFields converts two synchronized column views — field names and field
// types — into a nested field list. Vertical merges across the two views are
// the markup's only signal of nested structure: a multi-cell name row opens a
// composite whose row count is the first cell's rowspan, and the equal
// rowspan of the paired type cell is the proof both views describe the same
// grouping. Any asymmetry not covered by the "no fields" sentinel is
// surfaced as a SymmetryError, never silently resolved.
func InferFields(names, types View, cfg Config) ([]models.Field, error) {
	return inferFields(names, types, cfg, 1)
}

func inferFields(names, types View, cfg Config, depth int) ([]models.Field, error) {
	if depth > cfg.maxDepth() {
		return nil, fmt.Errorf("%w (depth %d)", ErrDepthExceeded, depth)
	}

	if nh, th := names.Height(), types.Height(); nh != th {
		if c, ok := names.soleCell(); ok && cfg.isSentinel(c) {
			return nil, nil
		}
		return nil, &SymmetryError{
			Reason: fmt.Sprintf("name view has %d rows, type view has %d", nh, th),
		}
	}

	var fields []models.Field
	for y := 0; y < names.spanRows(); y++ {
		nameRow := names.Row(y)
		typeRow := types.Row(y)

		switch {
		case len(nameRow) == 0:
			if len(typeRow) != 0 {
				return nil, &SymmetryError{
					Reason: fmt.Sprintf("row %d has type cells but no name cell", y),
				}
			}

		case len(nameRow) == 1 && cfg.isSentinel(nameRow[0]):
			// The sentinel consumes its own rowspan's worth of rows and
			// emits nothing.
			y += nameRow[0].Rowspan - 1

		case len(nameRow) == 1:
			if len(typeRow) != 1 {
				return nil, &SymmetryError{
					Reason: fmt.Sprintf("row %d has one name cell but %d type cells", y, len(typeRow)),
				}
			}
			fields = append(fields, models.Field{
				Name: nameRow[0].Content,
				Type: cfg.resolve(typeRow[0].Content),
			})

		default:
			if len(typeRow) == 0 {
				return nil, &SymmetryError{
					Reason: fmt.Sprintf("row %d has name cells but no type cell", y),
				}
			}
			group, typ := nameRow[0], typeRow[0]
			if group.Rowspan != typ.Rowspan {
				return nil, &SymmetryError{
					Reason: fmt.Sprintf("row %d group rowspan %d does not match type rowspan %d",
						y, group.Rowspan, typ.Rowspan),
				}
			}
			sub, err := inferFields(
				names.Crop(group.Colspan, y, -1, group.Rowspan),
				types.Crop(typ.Colspan, y, -1, typ.Rowspan),
				cfg, depth+1,
			)
			if err != nil {
				return nil, err
			}
			fields = append(fields, models.Field{
				Name: group.Content,
				Type: models.PairedType{
					Descriptor: cfg.resolve(typ.Content),
					Content:    models.FieldList{Fields: sub},
				},
			})
			// Resynchronize with the outer scan; running out of rows here
			// just means the table was truncated, which is tolerated.
			y += group.Rowspan - 1
		}
	}
	return fields, nil
}
