package gryla

import (
	"errors"
	"slices"
	"strings"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
	"github.com/gryla-project/gryla-go/pkg/gryla/parser"
)

// Mine parses a protocol page's wikitext and walks its section tree into a
// batch of packet schemas.
func Mine(page string, opts Options) (*models.Result, error) {
	return MineSections(parser.ParseSections(page), opts)
}

// MineSections walks a parsed section tree. Top-level sections must be one
// of the dialect's protocol states or on its ignore list; anything else is a
// DialectError, surfacing unmodeled structure instead of silently skipping
// it. Each state's children must be direction sections, and each grandchild
// is one packet. A packet whose table violates name/type symmetry is logged
// and dropped; every other packet error aborts the walk.
func MineSections(root *parser.Section, opts Options) (*models.Result, error) {
	log := opts.logger()
	dialect := opts.dialect()
	cfg := opts.parserConfig(dialect)

	result := &models.Result{}
	for _, state := range root.Children {
		stateName := strings.TrimSpace(state.Name)
		if slices.Contains(dialect.Ignored, stateName) {
			log.Debug("skipping ignored section", "section", stateName)
			continue
		}
		if !slices.Contains(dialect.States, stateName) {
			return nil, &parser.DialectError{Subject: stateName, Reason: "unrecognized top-level section"}
		}

		group := models.StateGroup{Name: stateName}
		for _, dir := range state.Children {
			dirName := strings.TrimSpace(dir.Name)
			if !slices.Contains(dialect.Directions, dirName) {
				return nil, &parser.DialectError{Subject: dirName, Reason: "unrecognized direction section"}
			}

			dirGroup := models.DirectionGroup{Name: dirName}
			for _, sub := range dir.Children {
				packetName := strings.TrimSpace(sub.Name)
				log.Debug("parsing packet", "state", stateName, "direction", dirName, "packet", packetName)

				packet, err := parser.ParsePacket(packetName, sub.Text, cfg)
				var symErr *parser.SymmetryError
				if errors.As(err, &symErr) {
					log.Warn("skipping packet with asymmetric table",
						"state", stateName, "direction", dirName, "packet", packetName, "err", err)
					continue
				}
				if err != nil {
					return nil, err
				}
				packet.State = stateName
				packet.Direction = dirName
				dirGroup.Packets = append(dirGroup.Packets, *packet)
			}
			group.Directions = append(group.Directions, dirGroup)
		}
		result.States = append(result.States, group)
	}
	return result, nil
}
