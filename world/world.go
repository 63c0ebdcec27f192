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

// Йоу, чат! Це центральний файл світу для екстрактора.
// Сервер тут - це не мережевий сервер, а "ручка" до завантаженого світу:
// сід світу і набір вимірів (overworld, the_nether, the_end),
// кожен зі своїми межами по висоті і своїм генератором біомів.

package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Server - все що екстракторам треба знати про світ
type Server struct {
	log        *zap.Logger
	seed       int64
	dimensions map[string]*Dimension
	order      []string // порядок вимірів як у конфігу
}

// Dimension - один вимір світу
type Dimension struct {
	Name        string
	MinSectionY int32 // найнижча секція (включно)
	MaxSectionY int32 // найвища секція (включно)

	// Preferred - генератор яким вимір генерується насправді.
	// Default - запасна конфігурація, якщо Preferred недоступний.
	Preferred Generator
	Default   Generator
}

// SectionBounds повертає межі секцій виміру
func (d *Dimension) SectionBounds() (minY, maxY int32) {
	return d.MinSectionY, d.MaxSectionY
}

// ErrDimensionNotExist повертається коли виміру немає на сервері
var ErrDimensionNotExist = errors.New("dimension not exist")

// NewServer створює сервер з сідом і вимірами.
// Виміри з однаковими іменами не допускаються.
func NewServer(logger *zap.Logger, seed int64, dims ...*Dimension) (*Server, error) {
	s := &Server{
		log:        logger,
		seed:       seed,
		dimensions: make(map[string]*Dimension, len(dims)),
	}
	for _, d := range dims {
		if d == nil || d.Name == "" {
			return nil, errors.New("dimension without name")
		}
		if d.MinSectionY > d.MaxSectionY {
			return nil, fmt.Errorf("dimension %s: min section %d above max section %d", d.Name, d.MinSectionY, d.MaxSectionY)
		}
		if _, ok := s.dimensions[d.Name]; ok {
			return nil, fmt.Errorf("duplicate dimension %s", d.Name)
		}
		s.dimensions[d.Name] = d
		s.order = append(s.order, d.Name)
	}
	logger.Debug("World loaded", zap.Int64("seed", seed), zap.Strings("dimensions", s.order))
	return s, nil
}

// Seed повертає активний сід світу
func (s *Server) Seed() int64 {
	return s.seed
}

// Dimension шукає вимір за іменем
func (s *Server) Dimension(name string) (*Dimension, error) {
	d, ok := s.dimensions[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrDimensionNotExist)
	}
	return d, nil
}

// Dimensions повертає імена всіх вимірів в порядку оголошення
func (s *Server) Dimensions() []string {
	return append([]string(nil), s.order...)
}
