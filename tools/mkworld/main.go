// Йоу, чат! Утиліта mkworld складає маленький збережений світ:
// level.dat з сідом і регіони всіх трьох ванільних вимірів, заповнені
// біомами шахівницею. Пишуться рівно ті чанки, які бере вибірка
// відбитків, плюс квадрат навколо 0,0, якщо задано radius.
// Зручно, щоб погратися з екстрактором без справжнього сервера.
package main

import (
	"flag"
	"path/filepath"

	"go.uber.org/zap"

	"SteelExtractor/biomehash"
	"SteelExtractor/extractor"
	"SteelExtractor/world"
	"SteelExtractor/world/worldtest"
)

var (
	dir    = flag.String("dir", "world", "Output world directory")
	seed   = flag.Int64("seed", 13579, "World seed written to level.dat")
	radius = flag.Int("radius", 0, "Extra chunks generated in every direction from 0,0")
	scale  = flag.Int("scale", 1, "Checkerboard scale, cell size is 2^scale chunks")
)

// palettes - біоми шахівниці для кожного виміру
var palettes = map[string][]string{
	"overworld":  {"minecraft:plains", "minecraft:desert", "minecraft:forest"},
	"the_nether": {"minecraft:nether_wastes", "minecraft:crimson_forest", "minecraft:soul_sand_valley"},
	"the_end":    {"minecraft:the_end", "minecraft:end_highlands"},
}

func main() {
	flag.Parse()
	logger := zap.Must(zap.NewDevelopment())
	defer func(logger *zap.Logger) { _ = logger.Sync() }(logger)

	n, err := build(logger, *dir, *seed, *radius, *scale)
	if err != nil {
		logger.Fatal("Create world fail", zap.Error(err))
	}
	logger.Info("World created", zap.String("dir", *dir), zap.Int64("seed", *seed), zap.Int("chunks", n))
}

// build пише світ у dir і повертає кількість чанків у кожному вимірі
func build(logger *zap.Logger, dir string, seed int64, radius, scale int) (int, error) {
	if err := worldtest.WriteLevel(dir, seed); err != nil {
		return 0, err
	}
	cols, err := columns(radius)
	if err != nil {
		return 0, err
	}

	for _, dc := range extractor.DefaultConfig().Dimensions {
		gen := regionOf(dc)
		if gen == nil {
			continue
		}
		board := world.Checkerboard{Biomes: palettes[dc.Name], Scale: scale}
		cls, err := board.NewClassifier(seed)
		if err != nil {
			return 0, err
		}
		chunks := make([]worldtest.Chunk, 0, len(cols))
		for _, col := range cols {
			chunk, err := classifyChunk(cls, col.X, col.Z, int8(dc.MinSectionY), int8(dc.MaxSectionY))
			if err != nil {
				return 0, err
			}
			chunks = append(chunks, chunk)
		}
		if err := worldtest.WriteChunks(filepath.Join(dir, gen.Region), worldtest.Zlib, chunks...); err != nil {
			return 0, err
		}
		logger.Debug("Dimension written", zap.String("dimension", dc.Name), zap.String("region", gen.Region))
	}
	return len(cols), nil
}

// regionOf знаходить регіонний генератор виміру: основний або запасний
func regionOf(dc extractor.DimensionConfig) *extractor.GeneratorConfig {
	if dc.Generator.Type == "region" {
		return &dc.Generator
	}
	if dc.Default != nil && dc.Default.Type == "region" {
		return dc.Default
	}
	return nil
}

// columns - чанки вибірки відбитків і квадрат [-radius, radius) без повторів
func columns(radius int) ([]biomehash.Column, error) {
	cfg := biomehash.DefaultConfig
	cols, err := biomehash.SampleColumns(cfg.SampleSeed, cfg.SampleCount, cfg.HalfRange)
	if err != nil {
		return nil, err
	}
	seen := make(map[biomehash.Column]bool, len(cols))
	out := make([]biomehash.Column, 0, len(cols))
	add := func(c biomehash.Column) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range cols {
		add(c)
	}
	for cx := -radius; cx < radius; cx++ {
		for cz := -radius; cz < radius; cz++ {
			add(biomehash.Column{X: int32(cx), Z: int32(cz)})
		}
	}
	return out, nil
}

// classifyChunk заповнює всі секції чанку біомами з класифікатора
func classifyChunk(cls world.Classifier, cx, cz int32, minY, maxY int8) (worldtest.Chunk, error) {
	chunk := worldtest.Chunk{X: cx, Z: cz}
	for sy := minY; sy <= maxY; sy++ {
		var biomes [64]string
		for i := range biomes {
			qx := cx<<2 | int32(i&3)
			qz := cz<<2 | int32(i>>2&3)
			qy := int32(sy)<<2 | int32(i>>4)
			b, err := cls.Classify(qx, qy, qz)
			if err != nil {
				return chunk, err
			}
			biomes[i] = b
		}
		chunk.Sections = append(chunk.Sections, worldtest.PackSection(sy, biomes))
	}
	return chunk, nil
}
