// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package biomehash

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"SteelExtractor/world"
)

// generatorFunc - генератор для тестів
type generatorFunc struct {
	family string
	new    func(seed int64) (world.Classifier, error)
}

func (g generatorFunc) Family() string { return g.family }

func (g generatorFunc) NewClassifier(seed int64) (world.Classifier, error) { return g.new(seed) }

func unavailable(family string) world.Generator {
	return generatorFunc{family: family, new: func(int64) (world.Classifier, error) {
		return nil, world.ErrGeneratorUnavailable
	}}
}

func vanillaDims(gen func(name string) world.Generator) []*world.Dimension {
	return []*world.Dimension{
		{Name: "overworld", MinSectionY: -4, MaxSectionY: 19, Preferred: gen("overworld")},
		{Name: "the_nether", MinSectionY: 0, MaxSectionY: 15, Preferred: gen("the_nether")},
		{Name: "the_end", MinSectionY: 0, MaxSectionY: 15, Preferred: gen("the_end")},
	}
}

func newServer(t *testing.T, seed int64, dims ...*world.Dimension) *world.Server {
	t.Helper()
	s, err := world.NewServer(zap.NewNop(), seed, dims...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCollect_ConstantBiome(t *testing.T) {
	s := newServer(t, 13579, vanillaDims(func(string) world.Generator {
		return world.Fixed{Biome: "minecraft:plains"}
	})...)

	r, err := Collect(zap.NewNop(), s, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Dimensions) != 3 {
		t.Fatalf("got %d dimensions, want 3", len(r.Dimensions))
	}
	columns, _ := SampleColumns(24680, 128, 625)
	for _, d := range r.Dimensions {
		if len(d.Hashes) != 128 {
			t.Fatalf("%s: got %d hashes, want 128", d.Name, len(d.Hashes))
		}
		first := d.Hashes[0].Fingerprint
		for i, h := range d.Hashes {
			if h.Fingerprint != first {
				t.Fatalf("%s: hash %d differs", d.Name, i)
			}
			// всі виміри мають однакову послідовність чанків
			if h.X != columns[i].X || h.Z != columns[i].Z {
				t.Fatalf("%s: column %d is [%d, %d], want %v", d.Name, i, h.X, h.Z, columns[i])
			}
		}
	}
	if ow := r.Dimension("overworld"); ow.MinSectionY != -4 || ow.MaxSectionY != 19 {
		t.Errorf("overworld bounds: [%d, %d]", ow.MinSectionY, ow.MaxSectionY)
	}
	if got := r.Dimension("overworld").Hashes[0].Fingerprint.String(); got != "8b3201a7e028a5962fd52113c2b61f7e" {
		t.Errorf("overworld fingerprint: %s", got)
	}
}

func TestCollect_PartialFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newServer(t, 13579,
		&world.Dimension{Name: "overworld", MinSectionY: -4, MaxSectionY: 19, Preferred: world.Fixed{Biome: "minecraft:plains"}},
		&world.Dimension{Name: "the_nether", MinSectionY: 0, MaxSectionY: 15, Preferred: world.Region{Dir: t.TempDir() + "/missing"}},
	)

	r, err := Collect(zap.New(core), s, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Dimensions) != 1 || r.Dimensions[0].Name != "overworld" {
		t.Fatalf("got dimensions %+v, want only overworld", r.Dimensions)
	}
	if n := len(r.Dimension("overworld").Hashes); n != 128 {
		t.Errorf("overworld: got %d hashes", n)
	}
	if r.Dimension("the_end") != nil || r.Dimension("the_nether") != nil {
		t.Error("skipped dimensions must not appear in the report")
	}
	if logs.FilterMessage("Dimension not available, skipping").Len() != 1 {
		t.Error("missing the_end was not reported")
	}
	if logs.FilterMessage("Cannot create biome classifier, skipping dimension").Len() != 1 {
		t.Error("broken the_nether was not reported")
	}
}

func TestCollect_FallbackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newServer(t, 13579, &world.Dimension{
		Name: "overworld", MinSectionY: 0, MaxSectionY: 1,
		Preferred: unavailable("multi_noise"),
		Default:   world.Fixed{Biome: "minecraft:plains"},
	})

	cfg := DefaultConfig
	cfg.SampleCount = 4
	r, err := Collect(zap.New(core), s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := NewBuilder("minecraft:").Build(constant("plains"), Column{}, 0, 1).Fingerprint
	if got := r.Dimension("overworld").Hashes[0].Fingerprint; got != want {
		t.Errorf("got %s, want default classifier fingerprint %s", got, want)
	}
	entries := logs.FilterMessage("Generator family unavailable, using the default configuration").All()
	if len(entries) != 1 || entries[0].ContextMap()["family"] != "multi_noise" {
		t.Errorf("fallback warning: %+v", entries)
	}
}

func TestCollect_UnavailableWithoutDefault(t *testing.T) {
	s := newServer(t, 13579, &world.Dimension{Name: "overworld", MaxSectionY: 1, Preferred: unavailable("multi_noise")})
	r, err := Collect(zap.NewNop(), s, DefaultConfig)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Dimensions) != 0 {
		t.Errorf("got %d dimensions, want none", len(r.Dimensions))
	}
}

func TestCollect_SeedMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var seeds []int64
	s := newServer(t, 42, vanillaDims(func(string) world.Generator {
		return generatorFunc{family: "test", new: func(seed int64) (world.Classifier, error) {
			seeds = append(seeds, seed)
			return constant("plains"), nil
		}}
	})...)

	cfg := DefaultConfig
	cfg.SampleCount = 2
	if _, err := Collect(zap.New(core), s, cfg); err != nil {
		t.Fatal(err)
	}
	if n := logs.FilterMessageSnippet("World seed differs").Len(); n != 1 {
		t.Errorf("got %d seed warnings, want 1", n)
	}
	// кожен вимір отримав свій класифікатор з активним сідом
	if len(seeds) != 3 {
		t.Fatalf("got %d classifiers, want one per dimension", len(seeds))
	}
	for _, seed := range seeds {
		if seed != 42 {
			t.Errorf("classifier built with seed %d, want the world seed", seed)
		}
	}
}

func TestCollect_CellFailuresAreWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	broken := generatorFunc{family: "test", new: func(int64) (world.Classifier, error) {
		return world.ClassifierFunc(func(_, qy, _ int32) (string, error) {
			if qy == 0 {
				return "", errors.New("no biome")
			}
			return "plains", nil
		}), nil
	}}
	s := newServer(t, 13579, &world.Dimension{Name: "overworld", MinSectionY: 0, MaxSectionY: 0, Preferred: broken})

	cfg := DefaultConfig
	cfg.SampleCount = 3
	r, err := Collect(zap.New(core), s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(r.Dimension("overworld").Hashes); n != 3 {
		t.Fatalf("got %d hashes, want 3", n)
	}
	entries := logs.FilterMessage("Some cells could not be classified").All()
	if len(entries) != 3 {
		t.Fatalf("got %d cell warnings, want one per column", len(entries))
	}
	if failed := entries[0].ContextMap()["failed"]; failed != int64(16) {
		t.Errorf("failed cells: %v, want 16", failed)
	}
}

func TestCollect_InvalidHalfRange(t *testing.T) {
	cfg := DefaultConfig
	cfg.HalfRange = 0
	if _, err := Collect(zap.NewNop(), newServer(t, 1), cfg); !errors.Is(err, ErrInvalidHalfRange) {
		t.Errorf("got %v", err)
	}
}

func TestReport_JSON(t *testing.T) {
	s := newServer(t, 13579,
		&world.Dimension{Name: "the_end", MinSectionY: 0, MaxSectionY: 0, Preferred: world.Fixed{Biome: "minecraft:the_end"}},
		&world.Dimension{Name: "overworld", MinSectionY: 0, MaxSectionY: 0, Preferred: world.Fixed{Biome: "minecraft:plains"}},
	)
	cfg := DefaultConfig
	cfg.SampleCount = 2
	r, err := Collect(zap.NewNop(), s, cfg)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"seed":13579,"chunk_sample_seed":24680,"num_chunks":2,` +
		`"overworld":{"min_section_y":0,"max_section_y":0,"hashes":[[142,452,"fff54658fc788f55e4d418c1ba4e30de"],[483,-84,"fff54658fc788f55e4d418c1ba4e30de"]]},` +
		`"the_end":{"min_section_y":0,"max_section_y":0,"hashes":[`
	if !strings.HasPrefix(string(data), want) {
		t.Errorf("got %s\nwant prefix %s", data, want)
	}
}

// stubWorld віддає виміри без перевірок сервера
type stubWorld map[string]*world.Dimension

func (stubWorld) Seed() int64 { return 13579 }

func (w stubWorld) Dimension(name string) (*world.Dimension, error) {
	if d, ok := w[name]; ok {
		return d, nil
	}
	return nil, world.ErrDimensionNotExist
}

func TestCollect_InvertedSectionBounds(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	plains := world.Fixed{Biome: "minecraft:plains"}
	w := stubWorld{
		"overworld":  {Name: "overworld", MinSectionY: 0, MaxSectionY: 0, Preferred: plains},
		"the_nether": {Name: "the_nether", MinSectionY: 5, MaxSectionY: 2, Preferred: plains},
	}
	cfg := DefaultConfig
	cfg.SampleCount = 2
	cfg.Dimensions = []string{"the_nether", "overworld"}

	r, err := Collect(zap.New(core), w, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Dimensions) != 1 || r.Dimensions[0].Name != "overworld" {
		t.Fatalf("got dimensions %+v, want only overworld", r.Dimensions)
	}
	entries := logs.FilterMessage("Invalid section bounds, skipping dimension").All()
	if len(entries) != 1 || entries[0].ContextMap()["dimension"] != "the_nether" {
		t.Errorf("bounds warning: %+v", entries)
	}
}

func TestCollect_ClashingNames(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	plains := world.Fixed{Biome: "minecraft:plains"}
	w := stubWorld{
		"overworld": {Name: "overworld", MinSectionY: 0, MaxSectionY: 0, Preferred: plains},
		"seed":      {Name: "seed", MinSectionY: 0, MaxSectionY: 0, Preferred: plains},
	}
	cfg := DefaultConfig
	cfg.SampleCount = 2
	cfg.Dimensions = []string{"overworld", "seed", "overworld", "num_chunks"}

	r, err := Collect(zap.New(core), w, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Dimensions) != 1 || r.Dimensions[0].Name != "overworld" {
		t.Fatalf("got dimensions %+v, want only overworld", r.Dimensions)
	}
	if n := logs.FilterMessage("Dimension name clashes with another report key, skipping").Len(); n != 3 {
		t.Errorf("got %d clash warnings, want 3", n)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), `"seed":`); n != 1 {
		t.Errorf("seed key written %d times: %s", n, data)
	}
	if n := strings.Count(string(data), `"overworld":`); n != 1 {
		t.Errorf("overworld key written %d times", n)
	}
}
