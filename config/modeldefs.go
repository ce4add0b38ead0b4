package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ModelDef restricts which animations get attached to a model on export.
type ModelDef struct {
	Vif string `yaml:"vif"`
	// nil means any animation is allowed, an empty list means none is
	Anm []string `yaml:"anm"`
}

func (md *ModelDef) HasAnimation(anmName string) bool {
	if md == nil || md.Anm == nil {
		return true
	}
	for _, candidate := range md.Anm {
		if candidate == anmName {
			return true
		}
	}
	return false
}

type GameModels struct {
	Game   string      `yaml:"game"`
	Models []*ModelDef `yaml:"models"`
}

type ModelDefs struct {
	Games []*GameModels `yaml:"games"`
}

func ParseModelDefs(data []byte) (*ModelDefs, error) {
	var defs ModelDefs
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse model definitions")
	}
	for _, g := range defs.Games {
		if _, err := ParseGameType(g.Game); err != nil {
			return nil, errors.Wrapf(err, "Model definitions")
		}
	}
	return &defs, nil
}

func LoadModelDefs(path string) (*ModelDefs, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %q", path)
	}
	return ParseModelDefs(data)
}

// Lookup never returns nil, unknown models get an unrestricted definition.
func (defs *ModelDefs) Lookup(game GameType, vifName string) *ModelDef {
	if defs != nil {
		for _, g := range defs.Games {
			if gt, _ := ParseGameType(g.Game); gt != game {
				continue
			}
			for _, md := range g.Models {
				if md.Vif == vifName {
					return md
				}
			}
		}
	}
	return &ModelDef{Vif: vifName}
}
