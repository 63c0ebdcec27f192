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

package world

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

// levelDat - тільки ті поля level.dat, які нам потрібні
type levelDat struct {
	Data struct {
		RandomSeed       int64 // до 1.16
		WorldGenSettings struct {
			Seed *int64 `nbt:"seed"` // nil, якщо тегу немає
		}
	}
}

// ReadLevelSeed читає сід світу з <dir>/level.dat.
// Якщо файлу немає - повертає помилку з os.ErrNotExist всередині.
func ReadLevelSeed(dir string) (seed int64, errRet error) {
	f, err := os.Open(filepath.Join(dir, "level.dat"))
	if err != nil {
		return 0, err
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close level.dat fail: %w", err2)
		}
	}(f)

	// level.dat зжатий через gzip
	r, err := gzip.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("open gzip reader fail: %w", err)
	}
	defer r.Close()

	var lv levelDat
	if _, err := nbt.NewDecoder(r).Decode(&lv); err != nil {
		return 0, fmt.Errorf("read level data fail: %w", err)
	}
	// 0 - теж валідний сід
	if s := lv.Data.WorldGenSettings.Seed; s != nil {
		return *s, nil
	}
	return lv.Data.RandomSeed, nil
}
