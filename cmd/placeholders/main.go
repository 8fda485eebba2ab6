package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"valet/game"
	"valet/sim"
)

func writeSprite(dir string, id sim.ArchetypeID) (string, error) {
	name := strings.ToLower(strings.ReplaceAll(sim.GetArchetype(id).Name, " ", "_")) + ".png"
	path := filepath.Join(dir, name)

	img, err := game.ArchetypeSprite(id)
	if err != nil {
		return "", err
	}
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return path, png.Encode(file, img)
}

func main() {
	out := pflag.StringP("out", "o", "assets", "directory to write the car sprites to")
	pflag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for id := sim.ArchetypeID(0); id < sim.ArchetypeCount; id++ {
		path, err := writeSprite(*out, id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("wrote", path)
	}
}
