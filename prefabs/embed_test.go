package prefabs

import "testing"

func TestLoadScriptNames(t *testing.T) {
	for _, name := range []string{
		"crumble.tengo",
		"scripts/crumble.tengo",
		"prefabs/scripts/crumble.tengo",
	} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s: empty script", name)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want AssetKind
	}{
		{"prefabs/climbing.yaml", AssetTuning},
		{"prefabs/hold.yaml", AssetPrefab},
		{"prefabs/hold.yml", AssetPrefab},
		{"prefabs/scripts/crumble.tengo", AssetScript},
		{"levels/wall.json", AssetLevel},
		{"prefabs/.hold.yaml.swp", AssetUnknown},
		{"README.md", AssetUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q): expected %s, got %s", tc.path, tc.want, got)
		}
	}
}
