// Йоу, чат! Це точка входу екстрактора.
// Він відкриває збережений світ, проганяє всі екстрактори
// і складає JSON файли для нашої реалізації сервера.
// Ліцензія AGPL, як і весь проєкт.

// Пакет main - це точка входу нашої програми, звідси все починається!
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"SteelExtractor/biomehash"
	"SteelExtractor/extractor"
	"SteelExtractor/world/multinoise"
)

// isDebug - в дебаг режимі буде більше логів
var (
	isDebug    = flag.Bool("debug", false, "Enable debug log output")
	configPath = flag.String("config", "extractor.toml", "Path to the config file")
)

func main() {
	flag.Parse()

	// В дебаг режимі логи детальніші, але повільніші
	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		// stderr/stdout не завжди підтримують Sync, тому помилку не панікуємо
		_ = logger.Sync()
	}(logger)

	logger.Info("Extractor start")
	printBuildInfo(logger)
	defer logger.Info("Extractor exit")

	config, err := readConfig(*configPath)
	if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		return
	}

	manifest, err := run(logger, &config)
	if err != nil {
		logger.Error("Extraction fail", zap.Error(err))
		return
	}
	logger.Info("Extraction done",
		zap.String("run", manifest.RunID.String()),
		zap.Int("files", len(manifest.Files)),
		zap.String("output", config.OutputDir),
	)
}

// run відкриває світ і проганяє всі екстрактори.
// Відбитки біомів рахуються для вимірів з конфігу, а не для ванільного списку.
func run(logger *zap.Logger, config *extractor.Config) (*extractor.Manifest, error) {
	// Ванільні пресети вбудовані, файл тільки доповнює їх
	presets, err := multinoise.LoadWithVanilla(config.MultiNoisePresets)
	if err != nil {
		return nil, fmt.Errorf("load multi-noise presets fail: %w", err)
	}

	// Кліматичних семплерів у цьому процесі немає, тому multi_noise
	// виміри підуть на свою запасну конфігурацію
	server, err := extractor.NewServer(logger, config, presets, nil)
	if err != nil {
		return nil, fmt.Errorf("load world fail: %w", err)
	}

	hashes := biomehash.DefaultConfig
	hashes.Dimensions = server.Dimensions()

	driver := extractor.NewDriver(logger, config)
	return driver.Run(server,
		biomehash.NewExtractor(logger, hashes),
		multinoise.NewExtractor(logger, presets),
	)
}

// printBuildInfo виводить інформацію про збірку
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

// readConfig читає конфіг з TOML файлу поверх значень за замовчуванням.
// Якщо файлу немає - працюємо з ванільними налаштуваннями.
// Якщо знайдемо невідомі налаштування - повернемо помилку.
func readConfig(path string) (extractor.Config, error) {
	c := extractor.DefaultConfig()
	// toml перевикористовує елементи існуючого слайсу, тому виміри
	// з конфігу не повинні змішуватись з ванільними
	c.Dimensions = nil
	meta, err := toml.DecodeFile(path, &c)
	if errors.Is(err, os.ErrNotExist) {
		return extractor.DefaultConfig(), nil
	} else if err != nil {
		return extractor.Config{}, err
	}
	if !meta.IsDefined("dimension") {
		c.Dimensions = extractor.DefaultConfig().Dimensions
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return extractor.Config{}, err
	}
	return c, nil
}

// errUnknownConfig - це список невідомих налаштувань
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// unwrap - якщо є помилка - відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
