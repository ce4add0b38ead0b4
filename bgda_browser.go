package main

import (
	"flag"
	"log"
	"os"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/pack"
	"github.com/bgda-tools/bgda_browser/pack/mdl"
	"github.com/bgda-tools/bgda_browser/utils"
	"github.com/bgda-tools/bgda_browser/vfs"
	"github.com/bgda-tools/bgda_browser/web"

	_ "github.com/bgda-tools/bgda_browser/pack/anm"
	_ "github.com/bgda-tools/bgda_browser/pack/vif"
)

func main() {
	var addr, dir, lmpPath, game, models, encoding, webPath string
	var check, dump bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&dir, "dir", "", "Path to extracted game files")
	flag.StringVar(&lmpPath, "lmp", "", "Path to .lmp archive")
	flag.StringVar(&game, "game", "bgda", "Game: bgda, con, rta, jlh")
	flag.StringVar(&models, "models", "", "Path to yaml model definitions")
	flag.StringVar(&encoding, "encoding", "", "Charmap of file names, see -encoding list")
	flag.StringVar(&webPath, "web", "web", "Path to static web files")
	flag.BoolVar(&check, "check", false, "Decode every file, report failures and exit")
	flag.BoolVar(&dump, "dump", false, "Trace decoding to stdout")
	flag.Parse()

	if encoding == "list" {
		for _, name := range config.ListEncodings() {
			log.Println(name)
		}
		return
	}
	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}

	gameType, err := config.ParseGameType(game)
	if err != nil {
		log.Fatal(err)
	}
	config.SetGameType(gameType)

	opts := mdl.Options{Game: gameType}
	if models != "" {
		if opts.Defs, err = config.LoadModelDefs(models); err != nil {
			log.Fatal(err)
		}
	}
	if dump {
		opts.Log = utils.NewLogger(os.Stdout)
		pack.SetTraceLogger(opts.Log)
	}

	var d vfs.Directory
	if lmpPath != "" {
		if d, err = vfs.OpenLmpDriver(lmpPath, gameType.IsLegacy()); err != nil {
			log.Fatal(err)
		}
	} else if dir != "" {
		d = vfs.NewDirectoryDriver(dir)
	} else {
		flag.PrintDefaults()
		return
	}

	if check {
		if failed := parseCheck(d, opts); failed != 0 {
			os.Exit(1)
		}
		return
	}

	if err := web.StartServer(addr, d, opts, webPath); err != nil {
		log.Fatal(err)
	}
}
