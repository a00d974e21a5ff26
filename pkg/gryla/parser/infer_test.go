package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
)

// columnViews crops the field-name and field-type column groups out of a
// parsed test table, mirroring what ParsePacket does.
func columnViews(t *testing.T, text string) (names, types View) {
	t.Helper()
	grid := mustParse(t, text)
	v := grid.View()
	height := v.Height()

	nameHeaders := v.SearchHeaders(func(s string) bool { return s == "Field Name" })
	typeHeaders := v.SearchHeaders(func(s string) bool { return s == "Field Type" })
	require.Len(t, nameHeaders, 1)
	require.Len(t, typeHeaders, 1)

	names = v.Crop(nameHeaders[0].X, 1, nameHeaders[0].Colspan, height-1)
	types = v.Crop(typeHeaders[0].X, 1, typeHeaders[0].Colspan, height-1)
	return names, types
}

func TestInferFields_Flat(t *testing.T) {
	names, types := columnViews(t, `{|
! Field Name
! Field Type
|-
| Window ID
| VarInt
|-
| Size
| Byte
|}`)

	fields, err := InferFields(names, types, DefaultConfig())
	require.NoError(t, err)

	want := []models.Field{
		{Name: "Window ID", Type: models.LeafType{Text: "VarInt"}},
		{Name: "Size", Type: models.LeafType{Text: "Byte"}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestInferFields_Composite(t *testing.T) {
	names, types := columnViews(t, `{|
! colspan="2"| Field Name
! colspan="2"| Field Type
|-
| rowspan="3"| Trades
| Input item
| rowspan="3"| Array
| Slot
|-
| Output item
| Slot
|-
| Uses
| Integer
|}`)

	fields, err := InferFields(names, types, DefaultConfig())
	require.NoError(t, err)

	want := []models.Field{
		{
			Name: "Trades",
			Type: models.PairedType{
				Descriptor: models.LeafType{Text: "Array"},
				Content: models.FieldList{Fields: []models.Field{
					{Name: "Input item", Type: models.LeafType{Text: "Slot"}},
					{Name: "Output item", Type: models.LeafType{Text: "Slot"}},
					{Name: "Uses", Type: models.LeafType{Text: "Integer"}},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestInferFields_GroupColspanWiderThanType(t *testing.T) {
	// The name group cell is two columns wide, the type group cell one.
	// Each view's nested content starts after its own group cell.
	names, types := columnViews(t, `{|
! colspan="3"| Field Name
! colspan="2"| Field Type
|-
| colspan="2" rowspan="2"| Group
| a
| rowspan="2"| Array
| Slot
|-
| b
| Slot
|}`)

	fields, err := InferFields(names, types, DefaultConfig())
	require.NoError(t, err)

	want := []models.Field{
		{
			Name: "Group",
			Type: models.PairedType{
				Descriptor: models.LeafType{Text: "Array"},
				Content: models.FieldList{Fields: []models.Field{
					{Name: "a", Type: models.LeafType{Text: "Slot"}},
					{Name: "b", Type: models.LeafType{Text: "Slot"}},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestInferFields_HeightMismatch(t *testing.T) {
	names, types := columnViews(t, `{|
! Field Name
! Field Type
|-
| Window ID
| VarInt
|-
| Orphan
|}`)

	fields, err := InferFields(names, types, DefaultConfig())
	var symErr *SymmetryError
	require.ErrorAs(t, err, &symErr)
	assert.Nil(t, fields)
}

func TestInferFields_RowspanMismatch(t *testing.T) {
	names, types := columnViews(t, `{|
! colspan="2"| Field Name
! colspan="2"| Field Type
|-
| rowspan="2"| Group
| a
| rowspan="3"| Array
| Slot
|-
| b
| Slot
|-
| stray
| stray name
| Slot
|}`)

	_, err := InferFields(names, types, DefaultConfig())
	var symErr *SymmetryError
	require.ErrorAs(t, err, &symErr)
}

func TestInferFields_SentinelSpansBothColumns(t *testing.T) {
	// The sentinel cell spans both column groups, so the type view is empty
	// and the height mismatch resolves through the sanctioned marker.
	names, types := columnViews(t, `{|
! Field Name
! Field Type
|-
| colspan="2"| ''no fields''
|}`)
	require.NotEqual(t, names.Height(), types.Height())

	fields, err := InferFields(names, types, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestInferFields_SentinelInNameColumn(t *testing.T) {
	names, types := columnViews(t, `{|
! Field Name
! Field Type
|-
| ''no fields''
| ''no fields''
|}`)

	fields, err := InferFields(names, types, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestInferFields_DepthLimit(t *testing.T) {
	names, types := columnViews(t, `{|
! colspan="2"| Field Name
! colspan="2"| Field Type
|-
| rowspan="2"| Trades
| Input item
| rowspan="2"| Array
| Slot
|-
| Uses
| Integer
|}`)

	cfg := DefaultConfig()
	cfg.MaxDepth = 1
	_, err := InferFields(names, types, cfg)
	assert.ErrorIs(t, err, ErrDepthExceeded)

	cfg.MaxDepth = 2
	_, err = InferFields(names, types, cfg)
	assert.NoError(t, err)
}

func TestInferFields_CustomResolver(t *testing.T) {
	names, types := columnViews(t, `{|
! Field Name
! Field Type
|-
| Window ID
| VarInt
|}`)

	cfg := DefaultConfig()
	cfg.ResolveType = func(text string) models.TypeNode {
		return models.LeafType{Text: "resolved:" + text}
	}
	fields, err := InferFields(names, types, cfg)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, models.LeafType{Text: "resolved:VarInt"}, fields[0].Type)
}
