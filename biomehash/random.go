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

import "math/bits"

// xorwow - генератор Марсальї (Xorshift RNGs, 2003) з доданком Вейля.
// Засів з 64-бітного сіда і відкидання перших значень фіксовані,
// тому послідовності збігаються з еталонними звітами біт у біт.
type xorwow struct {
	x, y, z, w, v int32
	addend        int32
}

func newXorwow(seed int64) *xorwow {
	lo, hi := int32(seed), int32(seed>>32)
	r := &xorwow{
		x:      lo,
		y:      hi,
		v:      ^lo,
		addend: lo<<10 ^ int32(uint32(hi)>>4),
	}
	// перші 64 значення викидаються: прості сіди дають нулі у старших бітах
	for i := 0; i < 64; i++ {
		r.nextInt()
	}
	return r
}

func (r *xorwow) nextInt() int32 {
	t := r.x
	t ^= int32(uint32(t) >> 2)
	r.x, r.y, r.z = r.y, r.z, r.w
	v0 := r.v
	r.w = v0
	t = t ^ t<<1 ^ v0 ^ v0<<4
	r.v = t
	r.addend += 362437
	return t + r.addend
}

// nextBits повертає bitCount старших бітів наступного значення
func (r *xorwow) nextBits(bitCount int) int32 {
	if bitCount == 0 {
		return 0
	}
	return int32(uint32(r.nextInt()) >> (32 - bitCount))
}

// nextIntRange - рівномірне число з [from, until), until > from.
// Для степенів двійки беруться старші біти, інакше - відкидання
// значень з неповного останнього "кошика".
func (r *xorwow) nextIntRange(from, until int32) int32 {
	n := until - from // може переповнитися, як і в оригінальному алгоритмі
	if n > 0 || n == -1<<31 {
		var rnd int32
		if n&-n == n {
			rnd = r.nextBits(31 - bits.LeadingZeros32(uint32(n)))
		} else {
			for {
				b := int32(uint32(r.nextInt()) >> 1)
				v := b % n
				if b-v+(n-1) >= 0 {
					rnd = v
					break
				}
			}
		}
		return from + rnd
	}
	for {
		if rnd := r.nextInt(); rnd >= from && rnd < until {
			return rnd
		}
	}
}
