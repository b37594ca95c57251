package pack

import "math"

// lcg returns a linear congruential generator over [0, 1) seeded with 1.
func lcg() func() float64 {
	const (
		a = 1664525
		c = 1013904223
		m = 1 << 32
	)
	s := uint64(1)
	return func() float64 {
		s = (a*s + c) % m
		return float64(s) / m
	}
}

func shuffle(cs []*circle, random func() float64) {
	for m := len(cs); m > 0; {
		i := int(random() * float64(m))
		m--
		cs[m], cs[i] = cs[i], cs[m]
	}
}

// enclose returns the smallest circle enclosing every circle of cs.
func enclose(cs []*circle, random func() float64) circle {
	cs = append([]*circle(nil), cs...)
	shuffle(cs, random)

	var (
		basis []*circle
		e     circle
		ok    bool
	)
	for i := 0; i < len(cs); {
		p := cs[i]
		if ok && enclosesWeak(&e, p) {
			i++
			continue
		}
		basis = extendBasis(basis, p)
		e, ok = encloseBasis(basis), true
		i = 0
	}
	return e
}

func extendBasis(basis []*circle, p *circle) []*circle {
	if enclosesWeakAll(p, basis) {
		return []*circle{p}
	}

	for _, b := range basis {
		if enclosesNot(p, b) {
			if e := encloseBasis2(b, p); enclosesWeakAll(&e, basis) {
				return []*circle{b, p}
			}
		}
	}

	for i := 0; i < len(basis)-1; i++ {
		for j := i + 1; j < len(basis); j++ {
			bi, bj := basis[i], basis[j]
			eij, eip, ejp := encloseBasis2(bi, bj), encloseBasis2(bi, p), encloseBasis2(bj, p)
			if enclosesNot(&eij, p) && enclosesNot(&eip, bj) && enclosesNot(&ejp, bi) {
				if e := encloseBasis3(bi, bj, p); enclosesWeakAll(&e, basis) {
					return []*circle{bi, bj, p}
				}
			}
		}
	}

	// Only reachable through floating point trouble; fall back to the
	// circle itself so the caller keeps making progress.
	return []*circle{p}
}

func enclosesNot(a, b *circle) bool {
	dr := a.r - b.r
	dx, dy := b.x-a.x, b.y-a.y
	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b *circle) bool {
	dr := a.r - b.r + math.Max(math.Max(a.r, b.r), 1)*1e-9
	dx, dy := b.x-a.x, b.y-a.y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a *circle, basis []*circle) bool {
	for _, b := range basis {
		if !enclosesWeak(a, b) {
			return false
		}
	}
	return true
}

func encloseBasis(basis []*circle) circle {
	switch len(basis) {
	case 1:
		return *basis[0]
	case 2:
		return encloseBasis2(basis[0], basis[1])
	default:
		return encloseBasis3(basis[0], basis[1], basis[2])
	}
}

func encloseBasis2(a, b *circle) circle {
	x21, y21, r21 := b.x-a.x, b.y-a.y, b.r-a.r
	l := math.Sqrt(x21*x21 + y21*y21)
	return circle{
		x: (a.x + b.x + x21/l*r21) / 2,
		y: (a.y + b.y + y21/l*r21) / 2,
		r: (l + a.r + b.r) / 2,
	}
}

func encloseBasis3(a, b, c *circle) circle {
	x1, y1, r1 := a.x, a.y, a.r
	x2, y2, r2 := b.x, b.y, b.r
	x3, y3, r3 := c.x, c.y, c.r
	a2, a3 := x1-x2, x1-x3
	b2, b3 := y1-y2, y1-y3
	c2, c3 := r2-r1, r3-r1
	d1 := x1*x1 + y1*y1 - r1*r1
	d2 := d1 - x2*x2 - y2*y2 + r2*r2
	d3 := d1 - x3*x3 - y3*y3 + r3*r3
	ab := a3*b2 - a2*b3
	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab
	A := xb*xb + yb*yb - 1
	B := 2 * (r1 + xa*xb + ya*yb)
	C := xa*xa + ya*ya - r1*r1
	var r float64
	if math.Abs(A) > 1e-6 {
		r = -(B + math.Sqrt(B*B-4*A*C)) / (2 * A)
	} else {
		r = -C / B
	}
	return circle{x: x1 + xa + xb*r, y: y1 + ya + yb*r, r: r}
}
