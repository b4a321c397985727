package prefabs

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadSplashSpecEmbedded(t *testing.T) {
	spec, err := LoadSplashSpec("water_splash.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.WaterTag == nil || *spec.WaterTag != "Water" {
		t.Fatalf("unexpected water tag %v", spec.WaterTag)
	}
	if spec.SplashInterval == nil || *spec.SplashInterval != 0.4 {
		t.Fatalf("unexpected interval %v", spec.SplashInterval)
	}
	if spec.Particle == nil || spec.Particle.Count <= 0 || !spec.Particle.Color.Set {
		t.Fatalf("expected a particle spec, got %+v", spec.Particle)
	}
	if len(spec.Clips) == 0 {
		t.Fatalf("expected clips")
	}
	for _, c := range spec.Clips {
		if c.Synth == nil {
			t.Fatalf("clip %q has no synth fallback", c.Name)
		}
	}
}

func TestLoadSpecMissing(t *testing.T) {
	if _, err := LoadSpec[SplashSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(dir, "water_splash.yaml"), []byte("name: override\nmin_pitch: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec, err := LoadSplashSpec("prefabs/water_splash.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "override" || spec.MinPitch == nil || *spec.MinPitch != 0.5 {
		t.Fatalf("expected disk override, got %+v", spec)
	}
	if spec.MaxPitch != nil {
		t.Fatalf("omitted fields should stay unset")
	}
}

func TestLevelSpecEmbedded(t *testing.T) {
	lvl, err := LoadLevelSpec("pool.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prefabsSeen := map[string]bool{}
	zones := 0
	for _, e := range lvl.Entities {
		if e.Prefab != "" {
			prefabsSeen[e.Prefab] = true
		}
		if _, ok := e.Components["zone"]; ok {
			zones++
		}
	}
	for _, want := range []string{"player.yaml", "wader.yaml", "camera.yaml"} {
		if !prefabsSeen[want] {
			t.Fatalf("expected %s in level", want)
		}
	}
	if zones == 0 {
		t.Fatalf("expected at least one water zone")
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte("zone: { tag: Water, width: 40, height: 10 }"), &raw); err != nil {
		t.Fatal(err)
	}
	z, err := DecodeComponentSpec[ZoneComponentSpec](raw["zone"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if z.Tag != "Water" || z.Width != 40 || z.Height != 10 {
		t.Fatalf("unexpected zone %+v", z)
	}

	empty, err := DecodeComponentSpec[ZoneComponentSpec](nil)
	if err != nil || empty != (ZoneComponentSpec{}) {
		t.Fatalf("nil should decode to zero value, got %+v %v", empty, err)
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{`"#a8d8ff"`, color.RGBA{R: 0xa8, G: 0xd8, B: 0xff, A: 0xff}, false},
		{`"#10203040"`, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#123"`, color.RGBA{}, true},
		{`"#zzzzzz"`, color.RGBA{}, true},
		{`[1, 2]`, color.RGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if c.RGBA != tc.want || !c.Set {
				t.Fatalf("got %+v, want %+v", c.RGBA, tc.want)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"wader.tengo":                 "scripts/wader.tengo",
		"scripts/wader.tengo":         "scripts/wader.tengo",
		"prefabs/scripts/wader.tengo": "scripts/wader.tengo",
		"":                            "",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := LoadScript("wader.tengo"); err != nil {
		t.Fatalf("embedded script: %v", err)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "water_splash.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name == "notes.txt" {
				t.Fatalf("non-prefab file reported")
			}
			if name == "water_splash.yaml" {
				return
			}
		case <-deadline:
			t.Fatalf("no event for water_splash.yaml")
		}
	}
}

func TestSchemasUseYAMLNames(t *testing.T) {
	schemas := Schemas()
	s, ok := schemas["splash.schema.json"]
	if !ok {
		t.Fatalf("missing splash schema, got %d schemas", len(schemas))
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"min_speed_for_splash"`, `"raycast_offset"`, `"clips"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("schema missing %s", want)
		}
	}
}
