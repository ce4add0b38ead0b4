package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/pack/mdl"
	"github.com/bgda-tools/bgda_browser/utils"
	"github.com/bgda-tools/bgda_browser/utils/gltfutils"
	"github.com/bgda-tools/bgda_browser/vfs"
)

type exporter struct {
	source vfs.Directory
	outDir string
	opts   mdl.Options
	asJSON bool
}

func (e *exporter) outName(vifName string) string {
	ext := ".glb"
	if e.asJSON {
		ext = ".gltf"
	}
	return filepath.Join(e.outDir, vfs.BaseName(vifName)+"_vif"+ext)
}

func (e *exporter) export(vifName string) error {
	m, err := mdl.Load(e.source, vifName, e.opts)
	if err != nil {
		return err
	}
	for name, err := range m.AnimationErrors {
		log.Printf("[export] %s: animation %s skipped: %v", vifName, name, err)
	}

	f, err := os.Create(e.outName(vifName))
	if err != nil {
		return errors.Wrapf(err, "Cannot create output")
	}
	defer f.Close()

	if e.asJSON {
		return gltfutils.ExportJSON(f, m.ExportGLTF())
	}
	return gltfutils.ExportBinary(f, m.ExportGLTF())
}

// exportAll converts names with a bounded pool of workers. A failed model
// is logged and counted, the batch goes on.
func (e *exporter) exportAll(names []string, workers int) (exported, failed int) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string)
	var nExported, nFailed int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if err := e.export(name); err != nil {
					log.Printf("[export] Failed to convert %s: %v", name, err)
					atomic.AddInt32(&nFailed, 1)
				} else {
					atomic.AddInt32(&nExported, 1)
				}
			}
		}()
	}
	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()
	return int(nExported), int(nFailed)
}

func main() {
	var dir, lmpPath, outDir, game, models, pattern string
	var workers int
	var asJSON, verbose bool
	flag.StringVar(&dir, "dir", "", "Path to extracted game files")
	flag.StringVar(&lmpPath, "lmp", "", "Path to .lmp archive")
	flag.StringVar(&outDir, "out", "", "Output directory, defaults to -dir")
	flag.StringVar(&game, "game", "bgda", "Game: bgda, con, rta, jlh")
	flag.StringVar(&models, "models", "", "Path to yaml model definitions")
	flag.StringVar(&pattern, "pattern", "", "Convert only files with names containing pattern")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "Number of parallel conversions")
	flag.BoolVar(&asJSON, "gltf", false, "Write .gltf with embedded buffers instead of .glb")
	flag.BoolVar(&verbose, "v", false, "Trace decoding to stdout")
	flag.Parse()

	gameType, err := config.ParseGameType(game)
	if err != nil {
		log.Fatal(err)
	}
	config.SetGameType(gameType)

	e := &exporter{outDir: outDir, asJSON: asJSON, opts: mdl.Options{Game: gameType}}
	if models != "" {
		if e.opts.Defs, err = config.LoadModelDefs(models); err != nil {
			log.Fatal(err)
		}
	}
	if verbose {
		e.opts.Log = utils.NewLogger(os.Stdout)
	}

	if lmpPath != "" {
		if e.source, err = vfs.OpenLmpDriver(lmpPath, gameType.IsLegacy()); err != nil {
			log.Fatal(err)
		}
	} else if dir != "" {
		e.source = vfs.NewDirectoryDriver(dir)
		if e.outDir == "" {
			e.outDir = dir
		}
	} else {
		flag.PrintDefaults()
		return
	}
	if e.outDir == "" {
		log.Fatal("-out is required when converting from an archive")
	}
	if err := os.MkdirAll(e.outDir, 0776); err != nil {
		log.Fatal(err)
	}

	vifs, err := vfs.ListWithExt(e.source, ".vif")
	if err != nil {
		log.Fatal(err)
	}
	names := vifs[:0]
	for _, name := range vifs {
		if pattern == "" || strings.Contains(name, pattern) {
			names = append(names, name)
		}
	}
	log.Printf("[export] found %d vif files", len(names))

	exported, failed := e.exportAll(names, workers)
	log.Printf("[export] %d converted, %d failed", exported, failed)
}
