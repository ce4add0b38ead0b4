package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/pack/lmp"
)

var motd = `#
# <=======> Lmp meta file <=======>
#
# All numbers in hex
# Lines format:
# name | offset | length
#
`

func UnpackLmp(a *lmp.Archive, outDir string) error {
	if err := os.MkdirAll(outDir, 0776); err != nil {
		return errors.Wrapf(err, "Cannot create directory '%s'", outDir)
	}
	lmpMeta, err := os.Create(filepath.Join(outDir, "_lmp_meta_.txt"))
	if err != nil {
		return errors.Wrapf(err, "Cannot create meta file")
	}
	defer lmpMeta.Close()

	fmt.Fprint(lmpMeta, motd)

	for _, e := range a.Entries {
		log.Println(e.Name)
		fmt.Fprintf(lmpMeta, "%-40s | %-8x | %-8x\n", e.Name, e.Offset, e.Length)

		data, err := a.Read(e.Name)
		if err != nil {
			return errors.Wrapf(err, "Cannot read '%s'", e.Name)
		}
		if err := ioutil.WriteFile(filepath.Join(outDir, filepath.Base(e.Name)), data, 0666); err != nil {
			return errors.Wrapf(err, "Cannot write '%s'", e.Name)
		}
	}
	return nil
}

// UnpackGob unpacks every archive of g into its own directory under outDir.
func UnpackGob(g *lmp.Gob, outDir string) error {
	for _, e := range g.Entries {
		a, err := g.Open(e.Name)
		if err != nil {
			return err
		}
		log.Printf("[gob] %s", e.Name)
		if err := UnpackLmp(a, filepath.Join(outDir, e.DirName())); err != nil {
			return errors.Wrapf(err, "Gob entry '%s'", e.Name)
		}
	}
	return nil
}

func main() {
	var inLmp, inGob, outDir, game string
	flag.StringVar(&inLmp, "lmp", "", "Path to lmp file to unpack")
	flag.StringVar(&inGob, "gob", "", "Path to gob file to unpack, every lmp goes to its own directory")
	flag.StringVar(&outDir, "out", "lmp_content", "Path where to unpack lmp file")
	flag.StringVar(&game, "game", "bgda", "Game: bgda, con, rta, jlh")
	flag.Parse()

	gameType, err := config.ParseGameType(game)
	if err != nil {
		log.Fatal(err)
	}

	if inGob != "" {
		data, err := ioutil.ReadFile(inGob)
		if err != nil {
			log.Fatal(err)
		}
		g, err := lmp.NewGobFromData(data, gameType.IsLegacy())
		if err != nil {
			log.Fatal(err)
		}
		if err := UnpackGob(g, outDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	data, err := ioutil.ReadFile(inLmp)
	if err != nil {
		log.Fatal(err)
	}
	a, err := lmp.NewFromData(data, gameType.IsLegacy())
	if err != nil {
		log.Fatal(err)
	}

	if err := UnpackLmp(a, outDir); err != nil {
		log.Fatal(err)
	}
}
