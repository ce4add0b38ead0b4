package config

import "testing"

var parseGameTests = []struct {
	in  string
	out GameType
	ok  bool
}{
	{"bgda", GameDarkAlliance, true},
	{"RTA", GameChampionsRTA, true},
	{"Champions of Norrath", GameChampionsOfNorrath, true},
	{" jlh ", GameJusticeLeagueHeroes, true},
	{"gow", GameUnknown, false},
}

func TestParseGameType(t *testing.T) {
	for _, test := range parseGameTests {
		g, err := ParseGameType(test.in)
		if (err == nil) != test.ok {
			t.Errorf("ParseGameType(%q) error %v, want ok=%v", test.in, err, test.ok)
			continue
		}
		if g != test.out {
			t.Errorf("ParseGameType(%q)=%v; expected %v", test.in, g, test.out)
		}
	}
}

const testDefs = `
games:
  - game: rta
    models:
      - vif: barbarian.vif
        anm: [walk.anm, run.anm]
      - vif: chest.vif
        anm: []
`

func TestModelDefs(t *testing.T) {
	defs, err := ParseModelDefs([]byte(testDefs))
	if err != nil {
		t.Fatal(err)
	}

	barb := defs.Lookup(GameChampionsRTA, "barbarian.vif")
	if !barb.HasAnimation("walk.anm") || barb.HasAnimation("die.anm") {
		t.Errorf("barbarian allowlist not applied: %v", barb.Anm)
	}
	if chest := defs.Lookup(GameChampionsRTA, "chest.vif"); chest.HasAnimation("open.anm") {
		t.Errorf("empty allowlist must reject everything")
	}
	if other := defs.Lookup(GameDarkAlliance, "barbarian.vif"); !other.HasAnimation("die.anm") {
		t.Errorf("undefined model must accept everything")
	}
	var nilDefs *ModelDefs
	if !nilDefs.Lookup(GameChampionsRTA, "x.vif").HasAnimation("y.anm") {
		t.Errorf("nil definitions must accept everything")
	}
}

func TestParseModelDefsRejectsUnknownGame(t *testing.T) {
	if _, err := ParseModelDefs([]byte("games:\n  - game: halo\n")); err == nil {
		t.Errorf("expected error for unknown game")
	}
}

func TestSetEncoding(t *testing.T) {
	defer SetEncoding(GetEncoding().String())
	if err := SetEncoding("Windows 1251"); err != nil {
		t.Fatal(err)
	}
	if GetEncoding().String() != "Windows 1251" {
		t.Errorf("encoding not switched: %v", GetEncoding())
	}
	if err := SetEncoding("klingon"); err == nil {
		t.Errorf("expected error for unknown encoding")
	}
}
