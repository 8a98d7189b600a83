package data

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed gamedata/*.yaml
var embedded embed.FS

var source fs.FS = mustSub(embedded, "gamedata")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// UseDir makes loaders read game data files from dir instead of the
// built-in copies. An empty dir restores the built-in data.
func UseDir(dir string) {
	if dir == "" {
		source = mustSub(embedded, "gamedata")
		return
	}
	source = os.DirFS(dir)
}

func readGameData(name string) ([]byte, error) {
	raw, err := fs.ReadFile(source, name)
	if err != nil {
		return nil, fmt.Errorf("reading game data %s: %w", name, err)
	}
	return raw, nil
}

// LoadAll loads every table the slay engine needs, in dependency order.
func LoadAll() error {
	if err := LoadSlayCatalog(); err != nil {
		return err
	}
	if err := LoadMonsterRaces(); err != nil {
		return err
	}
	if err := LoadEgoItems(); err != nil {
		return err
	}
	return nil
}
