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
	"errors"
	"fmt"
)

// Column - координати чанку, що потрапив у вибірку
type Column struct {
	X, Z int32
}

// ErrInvalidHalfRange повертається коли halfRange не додатний
var ErrInvalidHalfRange = errors.New("half range must be positive")

// SampleColumns повертає count псевдовипадкових чанків з квадрата
// [-halfRange, halfRange) по обох осях. Для кожного чанку спочатку
// береться x, потім z. Однакові параметри - однакова послідовність.
func SampleColumns(sampleSeed int64, count int, halfRange int32) ([]Column, error) {
	if halfRange <= 0 {
		return nil, fmt.Errorf("%d: %w", halfRange, ErrInvalidHalfRange)
	}
	if count <= 0 {
		return []Column{}, nil
	}
	rng := newXorwow(sampleSeed)
	columns := make([]Column, count)
	for i := range columns {
		columns[i].X = rng.nextIntRange(-halfRange, halfRange)
		columns[i].Z = rng.nextIntRange(-halfRange, halfRange)
	}
	return columns, nil
}
