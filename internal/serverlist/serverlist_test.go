package serverlist

import (
	"path/filepath"
	"testing"
)

func TestParseDescriptorLineWorkedExample(t *testing.T) {
	d, err := parseDescriptorLine("Reborn,game,EN,The official server,https://graalreborn.com,GNW22122,42,127.0.0.1,14900")
	if err != nil {
		t.Fatalf("parseDescriptorLine: %v", err)
	}
	if d.Name != "Reborn" || d.PlayerCount != 42 || d.Port != 14900 {
		t.Fatalf("descriptor = %+v, unexpected fields", d)
	}
}

func TestParseDescriptorLineRejectsShortLines(t *testing.T) {
	if _, err := parseDescriptorLine("too,few,fields"); err == nil {
		t.Fatal("expected an error for a malformed descriptor line")
	}
}

func TestSaveAndLoadCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serverlist.yaml")
	resp := &Response{Servers: []Descriptor{
		{Name: "Reborn", Type: "game", Language: "EN", URL: "https://graalreborn.com", Version: "GNW22122", PlayerCount: 42, IP: "127.0.0.1", Port: 14900},
	}}
	if err := SaveCache(path, resp); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	loaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != resp.Servers[0] {
		t.Fatalf("loaded = %+v, want %+v", loaded, resp.Servers)
	}
}
