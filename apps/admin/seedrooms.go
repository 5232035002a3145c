package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
)

// seedRooms bulk-imports the room listing; a no-op when rooms already exist.
func (cli *commandLine) seedRooms(path string) error {
	if path == "" {
		path = filepath.Join(cli.conf.WorkDir, cli.conf.SeedFile)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var entries []room.SeedRoom
	if err = json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	return cli.roomSvc.Seed(context.Background(), entries)
}
