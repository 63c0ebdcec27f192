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

package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"SteelExtractor/world"
)

// Extractor - один JSON файл з даними світу.
// Extract викликається рівно один раз за запуск.
type Extractor interface {
	FileName() string
	Extract(s *world.Server) (any, error)
}

// schemaProvider реалізують екстрактори, формат яких зафіксований JSON схемою
type schemaProvider interface {
	Schema() string
}

// Driver запускає екстрактори і складає результати в OutputDir
type Driver struct {
	log      *zap.Logger
	outDir   string
	validate bool
	runID    uuid.UUID
}

func NewDriver(logger *zap.Logger, config *Config) *Driver {
	id := uuid.New()
	return &Driver{
		log:      logger.Named("driver").With(zap.String("run", id.String())),
		outDir:   config.OutputDir,
		validate: config.ValidateOutput,
		runID:    id,
	}
}

// Manifest описує що записав один запуск
type Manifest struct {
	RunID uuid.UUID      `json:"run_id"`
	Seed  int64          `json:"seed"`
	Files []ManifestFile `json:"files"`
}

type ManifestFile struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Valid *bool  `json:"valid,omitempty"` // nil якщо схеми немає або перевірка вимкнена
}

// ManifestName - файл, який Run пише останнім
const ManifestName = "manifest.json"

// Run виконує всі екстрактори по черзі.
// Помилка одного екстрактора не зупиняє інші: він просто не потрапить у маніфест.
func (d *Driver) Run(s *world.Server, extractors ...Extractor) (*Manifest, error) {
	if err := os.MkdirAll(d.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir fail: %w", err)
	}
	m := &Manifest{RunID: d.runID, Seed: s.Seed(), Files: []ManifestFile{}}
	for _, e := range extractors {
		name := e.FileName()
		logger := d.log.With(zap.String("file", name))

		v, err := e.Extract(s)
		if err != nil {
			logger.Error("Extract fail", zap.Error(err))
			continue
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			logger.Error("Encode json fail", zap.Error(err))
			continue
		}

		entry := ManifestFile{Name: name, Size: len(data)}
		if sp, ok := e.(schemaProvider); ok && d.validate {
			err := validateJSON(name, sp.Schema(), data)
			if err != nil {
				// файл все одно пишемо: офлайн порівняння саме покаже аномалії
				logger.Warn("Output does not match its schema", zap.Error(err))
			}
			valid := err == nil
			entry.Valid = &valid
		}

		if err := os.WriteFile(filepath.Join(d.outDir, name), data, 0o644); err != nil {
			logger.Error("Write file fail", zap.Error(err))
			continue
		}
		logger.Info("Extracted", zap.Int("bytes", len(data)))
		m.Files = append(m.Files, entry)
	}

	slices.SortFunc(m.Files, func(a, b ManifestFile) bool { return a.Name < b.Name })
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(d.outDir, ManifestName), data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest fail: %w", err)
	}
	return m, nil
}

// validateJSON перевіряє закодований документ по схемі
func validateJSON(name, schemaText string, data []byte) error {
	sch, err := jsonschema.CompileString(name+".schema.json", schemaText)
	if err != nil {
		return fmt.Errorf("compile schema fail: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return sch.Validate(v)
}
