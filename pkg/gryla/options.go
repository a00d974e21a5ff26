// Package gryla mines structured packet schemas from the protocol
// documentation pages of a MediaWiki site.
package gryla

import (
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
	"github.com/gryla-project/gryla-go/pkg/gryla/parser"
)

// Dialect names the wiki constructs the miner expects. The tables are
// configuration, not algorithm: when the wiki drifts, the dialect is updated
// without touching the parsing code.
type Dialect struct {
	// States are the recognized top-level protocol state sections.
	States []string `koanf:"states"`
	// Ignored are top-level sections skipped without error.
	Ignored []string `koanf:"ignored"`
	// Directions are the allowed bound-to section names within a state.
	Directions []string `koanf:"directions"`
	// NoFieldsMarker is the sanctioned sentinel for packets without fields.
	NoFieldsMarker string `koanf:"no_fields_marker"`
	// PacketIDHeader is the literal required in a packet table's first cell.
	PacketIDHeader string `koanf:"packet_id_header"`
	// FieldNameHeader is the field-name column group header.
	FieldNameHeader string `koanf:"field_name_header"`
	// FieldTypeHeader is the field-type column group header.
	FieldTypeHeader string `koanf:"field_type_header"`
}

// DefaultDialect returns the dialect observed on the protocol wiki.
func DefaultDialect() Dialect {
	return Dialect{
		States:          []string{"Handshaking", "Status", "Login", "Configuration", "Play"},
		Ignored:         []string{"Definitions", "Packet format", "Data types", "Conventions", "Navigation"},
		Directions:      []string{"Clientbound", "Serverbound"},
		NoFieldsMarker:  "''no fields''",
		PacketIDHeader:  "Packet ID",
		FieldNameHeader: "Field Name",
		FieldTypeHeader: "Field Type",
	}
}

// Clone returns a deep copy of the dialect, so a caller mutating its own
// tables after mining starts cannot affect a walk in progress.
func (d Dialect) Clone() Dialect {
	var out Dialect
	if err := deepcopy.Copy(&out, &d); err != nil {
		// Dialect is plain data; a copy failure is a programming error.
		panic(err)
	}
	return out
}

// Options configures mining behavior.
type Options struct {
	// Dialect is the wiki dialect to expect. Zero value means the default.
	Dialect Dialect
	// MaxDepth is the maximum number of nested field-list levels; a flat
	// table is depth 1. Zero means the default of 32.
	MaxDepth int
	// ResolveType converts raw type-cell text into a type node. Nil keeps
	// types unresolved as leaf text, the extension point for a real
	// wire-encoding resolver.
	ResolveType func(string) models.TypeNode
	// Logger receives walk progress and packet skips. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns default mining options.
func DefaultOptions() Options {
	return Options{
		Dialect: DefaultDialect(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// dialect returns a private copy of the configured dialect with unset
// fields filled from the default.
func (o Options) dialect() Dialect {
	def := DefaultDialect()
	d := o.Dialect.Clone()
	if len(d.States) == 0 {
		d.States = def.States
	}
	if len(d.Ignored) == 0 {
		d.Ignored = def.Ignored
	}
	if len(d.Directions) == 0 {
		d.Directions = def.Directions
	}
	if d.NoFieldsMarker == "" {
		d.NoFieldsMarker = def.NoFieldsMarker
	}
	if d.PacketIDHeader == "" {
		d.PacketIDHeader = def.PacketIDHeader
	}
	if d.FieldNameHeader == "" {
		d.FieldNameHeader = def.FieldNameHeader
	}
	if d.FieldTypeHeader == "" {
		d.FieldTypeHeader = def.FieldTypeHeader
	}
	return d
}

func (o Options) parserConfig(d Dialect) parser.Config {
	return parser.Config{
		PacketIDHeader:  d.PacketIDHeader,
		FieldNameHeader: d.FieldNameHeader,
		FieldTypeHeader: d.FieldTypeHeader,
		NoFieldsMarker:  d.NoFieldsMarker,
		MaxDepth:        o.MaxDepth,
		ResolveType:     o.ResolveType,
	}
}
