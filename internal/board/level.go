package board

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hosler/pyreborn-go/internal/perr"
	"github.com/hosler/pyreborn-go/internal/world"
)

// ParseLevel parses a GLEVNW01 text level file into a world.Level (spec
// §4.6). name is used as the resulting level's Name (the caller typically
// knows the filename already; the file body itself carries no name field).
func ParseLevel(name string, r io.Reader) (*world.Level, error) {
	lvl := world.NewLevel(name)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "GLEVNW01" {
			// Some servers omit the header; treat the first line as data if
			// it doesn't match rather than failing outright.
			if err := parseLevelLine(lvl, sc.Text()); err != nil {
				return nil, err
			}
		}
	}
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseLevelLine(lvl, line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.BadPacket, "scan level file", err)
	}
	return lvl, nil
}

func parseLevelLine(lvl *world.Level, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "BOARD":
		return parseBoardLine(lvl, fields)
	case "SIGN":
		return parseSignLine(lvl, fields, line)
	case "LINK":
		return parseLinkLine(lvl, fields)
	case "CHEST":
		return parseChestLine(lvl, fields)
	case "NPC":
		return parseNpcLine(lvl, fields)
	default:
		// Unrecognized record kinds (baddy definitions, etc.) are skipped;
		// they carry no data this codec models yet.
		return nil
	}
}

func parseBoardLine(lvl *world.Level, fields []string) error {
	if len(fields) < 6 {
		return perr.New(perr.BadPacket, "BOARD line has too few fields")
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return perr.Wrap(perr.BadPacket, "BOARD x", err)
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return perr.Wrap(perr.BadPacket, "BOARD y", err)
	}
	w, err := strconv.Atoi(fields[3])
	if err != nil {
		return perr.Wrap(perr.BadPacket, "BOARD w", err)
	}
	tiles, err := DecodeBoardLine(fields[5], w)
	if err != nil {
		return err
	}
	for i, tile := range tiles {
		tx := x + i
		if tx < 0 || tx >= 64 || y < 0 || y >= 64 {
			continue
		}
		lvl.Tiles[y*64+tx] = tile
	}
	return nil
}

func parseSignLine(lvl *world.Level, fields []string, raw string) error {
	if len(fields) < 3 {
		return perr.New(perr.BadPacket, "SIGN line has too few fields")
	}
	x, _ := strconv.Atoi(fields[1])
	y, _ := strconv.Atoi(fields[2])
	text := ""
	if idx := strings.Index(raw, fields[2]); idx >= 0 {
		rest := raw[idx+len(fields[2]):]
		text = strings.TrimLeft(rest, " \t")
	}
	lvl.Signs = append(lvl.Signs, world.Sign{X: x, Y: y, Text: text})
	return nil
}

func parseLinkLine(lvl *world.Level, fields []string) error {
	if len(fields) < 7 {
		return perr.New(perr.BadPacket, "LINK line has too few fields")
	}
	dest := fields[1]
	x, _ := strconv.Atoi(fields[2])
	y, _ := strconv.Atoi(fields[3])
	w, _ := strconv.Atoi(fields[4])
	h, _ := strconv.Atoi(fields[5])
	dx, _ := strconv.ParseFloat(fields[6], 64)
	dy := 0.0
	if len(fields) > 7 {
		dy, _ = strconv.ParseFloat(fields[7], 64)
	}
	lvl.Links = append(lvl.Links, world.Link{X: x, Y: y, W: w, H: h, DestLevel: dest, DestX: dx, DestY: dy})
	return nil
}

func parseChestLine(lvl *world.Level, fields []string) error {
	if len(fields) < 4 {
		return perr.New(perr.BadPacket, "CHEST line has too few fields")
	}
	x, _ := strconv.Atoi(fields[1])
	y, _ := strconv.Atoi(fields[2])
	item := fields[3]
	sign := ""
	if len(fields) > 4 {
		sign = strings.Join(fields[4:], " ")
	}
	lvl.Chests = append(lvl.Chests, world.Chest{X: x, Y: y, Item: item, Sign: sign})
	return nil
}

func parseNpcLine(lvl *world.Level, fields []string) error {
	if len(fields) < 4 {
		return perr.New(perr.BadPacket, "NPC line has too few fields")
	}
	image := fields[1]
	x, _ := strconv.ParseFloat(fields[2], 64)
	y, _ := strconv.ParseFloat(fields[3], 64)
	n := &world.NPC{
		ID:      world.NextNpcID(),
		Image:   image,
		X:       x,
		Y:       y,
		Visible: true,
	}
	lvl.NPCs = append(lvl.NPCs, n)
	return nil
}
