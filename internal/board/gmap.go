package board

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hosler/pyreborn-go/internal/perr"
	"github.com/hosler/pyreborn-go/internal/world"
)

// ParseGMap parses a .gmap text manifest into a world.GMap (spec §4.6):
// a WIDTH/HEIGHT declaration followed by one LEVELNAMES block listing the
// child level file per row, comma-separated.
func ParseGMap(name string, r io.Reader) (*world.GMap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 16*1024), 1<<20)

	width, height := 0, 0
	var rows []string
	inLevelNames := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "WIDTH"):
			width, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "WIDTH")))
		case strings.HasPrefix(line, "HEIGHT"):
			height, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "HEIGHT")))
		case line == "LEVELNAMES":
			inLevelNames = true
		case line == "LEVELNAMESEND":
			inLevelNames = false
		case inLevelNames:
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.BadPacket, "scan gmap file", err)
	}
	if width == 0 || height == 0 {
		return nil, perr.New(perr.BadPacket, "gmap manifest missing WIDTH/HEIGHT")
	}

	g := world.NewGMap(name, width, height)
	for row, line := range rows {
		if row >= height {
			break
		}
		cells := strings.Split(line, ",")
		for col, cell := range cells {
			if col >= width {
				break
			}
			cell = strings.Trim(strings.TrimSpace(cell), "\"")
			if cell == "" {
				continue
			}
			g.SetSegment(col, row, cell)
		}
	}
	return g, nil
}
