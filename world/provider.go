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

// Йоу, чат! Сьогодні ми розберемо як читати біоми з уже згенерованого світу!
// Якщо світ вже збережений на диск, то біоми лежать прямо в .mca файлах:
// кожна секція чанку має палітру біомів і упаковані індекси 4x4x4.
// Такий класифікатор дозволяє порівняти нашу генерацію з ванільною
// без запуску самого генератора.

package world

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save/region"
)

// Region - генератор, що читає біоми з папки region збереженого світу
type Region struct {
	Dir     string        // директорія з .mca файлами
	Limiter *rate.Limiter // обмежувач швидкості завантаження чанків, nil = без обмежень
	Logger  *zap.Logger
}

func (r Region) Family() string { return "region" }

// NewClassifier перевіряє що директорія існує і створює класифікатор.
// Сід ігнорується - світ вже згенерований зі своїм сідом.
func (r Region) NewClassifier(int64) (Classifier, error) {
	st, err := os.Stat(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("open region dir fail: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("region dir %s is not a directory", r.Dir)
	}
	limiter, logger := r.Limiter, r.Logger
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &regionClassifier{
		dir:     r.Dir,
		limiter: limiter,
		log:     logger,
		columns: make(map[[2]int32]*column),
	}, nil
}

// regionClassifier кешує кожен прочитаний чанк, тому повторні запити
// до тієї ж колони не читають диск
type regionClassifier struct {
	dir     string
	limiter *rate.Limiter
	log     *zap.Logger
	columns map[[2]int32]*column
}

// column - розпаковані біоми одного чанку
type column struct {
	sections map[int32]*section
	err      error // помилка завантаження, кешується разом з колоною
}

type section struct {
	biomes [64]string
	err    error
}

var (
	errChunkNotExist   = errors.New("chunk not exist")
	errSectionNotExist = errors.New("section not exist")
)

func (c *regionClassifier) Classify(qx, qy, qz int32) (string, error) {
	pos := [2]int32{qx >> 2, qz >> 2}
	col, ok := c.columns[pos]
	if !ok {
		col = c.loadColumn(pos)
		c.columns[pos] = col
	}
	if col.err != nil {
		return "", col.err
	}
	sec, ok := col.sections[qy>>2]
	if !ok {
		return "", fmt.Errorf("chunk [%d, %d] section %d: %w", pos[0], pos[1], qy>>2, errSectionNotExist)
	}
	if sec.err != nil {
		return "", sec.err
	}
	return sec.biomes[biomeIndex(qx, qy, qz)], nil
}

// loadColumn читає чанк з диску і розпаковує біоми всіх його секцій
func (c *regionClassifier) loadColumn(pos [2]int32) *column {
	logger := c.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))
	if err := c.limiter.Wait(context.Background()); err != nil {
		return &column{err: fmt.Errorf("wait chunk loading limiter fail: %w", err)}
	}
	chunk, err := c.readChunk(pos)
	if err != nil {
		logger.Debug("Load chunk fail", zap.Error(err))
		return &column{err: err}
	}

	col := &column{sections: make(map[int32]*section, len(chunk.Sections))}
	for i := range chunk.Sections {
		s := &chunk.Sections[i]
		biomes, err := unpackBiomes(s.Biomes.Palette, s.Biomes.Data)
		if err != nil {
			err = fmt.Errorf("chunk [%d, %d] section %d: %w", pos[0], pos[1], s.Y, err)
		}
		col.sections[int32(s.Y)] = &section{biomes: biomes, err: err}
	}
	logger.Debug("Loaded chunk", zap.Int("sections", len(col.sections)), zap.String("status", chunk.Status))
	return col
}

// chunkData - тільки ті частини NBT чанку, що потрібні для біомів
type chunkData struct {
	XPos     int32 `nbt:"xPos"`
	ZPos     int32 `nbt:"zPos"`
	Status   string
	Sections []sectionData `nbt:"sections"`
}

type sectionData struct {
	Y      int8
	Biomes struct {
		Palette []string `nbt:"palette"`
		Data    []int64  `nbt:"data"`
	} `nbt:"biomes"`
}

// readChunk завантажує чанк за його координатами.
// Спочатку шукає потрібний регіон, потім читає з нього сектор чанку.
func (c *regionClassifier) readChunk(pos [2]int32) (chunk *chunkData, errRet error) {
	rx, rz := region.At(int(pos[0]), int(pos[1]))
	path := filepath.Join(c.dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
	r, err := region.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("chunk [%d, %d]: %w", pos[0], pos[1], errChunkNotExist)
	} else if err != nil {
		return nil, fmt.Errorf("open region fail: %w", err)
	}
	defer func(r *region.Region) {
		err2 := r.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close region fail: %w", err2)
		}
	}(r)

	x, z := region.In(int(pos[0]), int(pos[1]))
	if !r.ExistSector(x, z) {
		return nil, fmt.Errorf("chunk [%d, %d]: %w", pos[0], pos[1], errChunkNotExist)
	}
	data, err := r.ReadSector(x, z)
	if err != nil {
		return nil, fmt.Errorf("read sector fail: %w", err)
	}

	rd, err := decompressSector(data)
	if err != nil {
		return nil, err
	}
	chunk = new(chunkData)
	if _, err := nbt.NewDecoder(rd).Decode(chunk); err != nil {
		return nil, fmt.Errorf("parse chunk data fail: %w", err)
	}
	return chunk, nil
}

// decompressSector знімає стиснення з даних сектора.
// Перший байт - тип стиснення: 1 = gzip, 2 = zlib, 3 = без стиснення.
func decompressSector(data []byte) (io.Reader, error) {
	if len(data) == 0 {
		return nil, errors.New("empty sector")
	}
	payload := bytes.NewReader(data[1:])
	switch data[0] {
	case 1:
		r, err := gzip.NewReader(payload)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader fail: %w", err)
		}
		return r, nil
	case 2:
		r, err := zlib.NewReader(payload)
		if err != nil {
			return nil, fmt.Errorf("open zlib reader fail: %w", err)
		}
		return r, nil
	case 3:
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown compression type %d", data[0])
	}
}
