package mdl

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/config"
	"github.com/bgda-tools/bgda_browser/pack/anm"
	"github.com/bgda-tools/bgda_browser/pack/vif"
	"github.com/bgda-tools/bgda_browser/utils"
	"github.com/bgda-tools/bgda_browser/vfs"
)

type Options struct {
	Game config.GameType
	Defs *config.ModelDefs
	Log  *utils.Logger
}

// Model is a mesh file with the texture size and animations found next to it.
type Model struct {
	Name          string
	Vif           *vif.Vif
	TextureName   string
	TextureWidth  int
	TextureHeight int
	Animations    []*anm.AnmData
	// animations that failed to decode or do not fit the skeleton
	AnimationErrors map[string]error
}

// AnimationAllowed applies the model definition and the naming
// conventions of the game files: projectiles only use projectile
// animations, ants never use projectile or spell animations.
func AnimationAllowed(vifName, anmName string, def *config.ModelDef) bool {
	if !def.HasAnimation(anmName) {
		return false
	}
	if strings.HasPrefix(vifName, "projectile") && !strings.HasPrefix(anmName, "projectile") {
		return false
	}
	if strings.HasPrefix(vifName, "ant") && (strings.HasPrefix(anmName, "projectile") || strings.HasPrefix(anmName, "spel")) {
		return false
	}
	return true
}

func findWithExt(dir vfs.Directory, base, ext string) (string, bool) {
	names, err := vfs.ListWithExt(dir, ext)
	if err != nil {
		return "", false
	}
	for _, name := range names {
		if strings.EqualFold(vfs.BaseName(name), base) {
			return name, true
		}
	}
	return "", false
}

// Load decodes vifName from dir together with its texture header and
// the allowed animations of the same directory. Only a broken mesh file
// fails the load; broken animations are recorded in AnimationErrors.
func Load(dir vfs.Directory, vifName string, opts Options) (*Model, error) {
	data, err := vfs.ReadFile(dir, vifName)
	if err != nil {
		return nil, err
	}
	v, err := vif.NewFromData(data, opts.Log)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot decode '%s'", vifName)
	}

	m := &Model{
		Name:            vfs.BaseName(vifName),
		Vif:             v,
		AnimationErrors: make(map[string]error),
	}

	if texName, ok := findWithExt(dir, m.Name, ".tex"); ok {
		if texData, err := vfs.ReadFile(dir, texName); err != nil {
			opts.Log.Printf("texture %s: %v", texName, err)
		} else {
			m.TextureName = texName
			m.TextureWidth, m.TextureHeight = TextureSize(texData)
		}
	}

	anmNames, err := vfs.ListWithExt(dir, ".anm")
	if err != nil {
		return nil, err
	}
	def := opts.Defs.Lookup(opts.Game, vifName)
	variant := anm.VariantForGame(opts.Game)
	for _, anmName := range anmNames {
		if !AnimationAllowed(vifName, anmName, def) {
			continue
		}
		a, err := loadAnimation(dir, anmName, variant, opts.Log)
		if err == nil && len(m.Animations) != 0 && a.NumJoints != m.Animations[0].NumJoints {
			err = errors.Errorf("Skeleton of %d joints does not match %d joints of '%s'",
				a.NumJoints, m.Animations[0].NumJoints, m.Animations[0].Name)
		}
		if err != nil {
			opts.Log.Printf("animation %s skipped: %v", anmName, err)
			m.AnimationErrors[anmName] = err
			continue
		}
		m.Animations = append(m.Animations, a)
	}
	return m, nil
}

func loadAnimation(dir vfs.Directory, name string, variant anm.Variant, exlog *utils.Logger) (*anm.AnmData, error) {
	data, err := vfs.ReadFile(dir, name)
	if err != nil {
		return nil, err
	}
	a, err := anm.NewFromData(data, variant, exlog)
	if err != nil {
		return nil, err
	}
	a.Name = name
	return a, nil
}
