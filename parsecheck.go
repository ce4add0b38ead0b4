package main

import (
	"log"

	"github.com/bgda-tools/bgda_browser/pack"
	"github.com/bgda-tools/bgda_browser/pack/mdl"
	"github.com/bgda-tools/bgda_browser/pack/vif"
	"github.com/bgda-tools/bgda_browser/vfs"
)

// parseCheck decodes every known file of rootfs and loads every model,
// logging each failure. Returns the number of failed files.
func parseCheck(rootfs vfs.Directory, opts mdl.Options) int {
	fileList, err := rootfs.List()
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, fname := range fileList {
		if !pack.HasHandler(fname) {
			continue
		}
		inst, err := pack.GetInstanceHandler(rootfs, fname)
		if err != nil {
			log.Printf("[check] %s: %v", fname, err)
			failed++
			continue
		}
		if v, ok := inst.(*vif.Vif); ok {
			for _, f := range v.Failed {
				log.Printf("[check] %s: %v", fname, f)
			}
			for _, w := range v.Warnings {
				log.Printf("[check] %s: warning %v", fname, w)
			}
			m, err := mdl.Load(rootfs, fname, opts)
			if err != nil {
				log.Printf("[check] %s: %v", fname, err)
				failed++
				continue
			}
			for name, err := range m.AnimationErrors {
				log.Printf("[check] %s + %s: %v", fname, name, err)
			}
		}
	}
	log.Printf("[check] %d files failed", failed)
	return failed
}
