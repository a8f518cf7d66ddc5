package fx

import (
	"math"
	"math/rand"
	"time"
)

// Particle is one spark of a Burst, positioned in board cell units.
type Particle struct {
	X, Y   float64
	VX, VY float64 // cells per second
	Age    time.Duration
}

// Burst is a short-lived particle spray, used when the creature crashes.
type Burst struct {
	rng       *rand.Rand
	lifetime  time.Duration
	particles []Particle
}

// NewBurst creates an empty burst whose particles live for lifetime.
func NewBurst(seed int64, lifetime time.Duration) *Burst {
	return &Burst{
		rng:      rand.New(rand.NewSource(seed)),
		lifetime: lifetime,
	}
}

// Spawn emits n particles from (x, y) in random directions.
func (b *Burst) Spawn(x, y float64, n int) {
	for range n {
		angle := b.rng.Float64() * 2 * math.Pi
		speed := 2 + b.rng.Float64()*4
		b.particles = append(b.particles, Particle{
			X:  x,
			Y:  y,
			VX: math.Cos(angle) * speed,
			VY: math.Sin(angle) * speed,
		})
	}
}

// Advance moves every particle and drops the expired ones.
func (b *Burst) Advance(dt time.Duration) {
	if dt <= 0 || len(b.particles) == 0 {
		return
	}
	sec := dt.Seconds()
	alive := b.particles[:0]
	for _, p := range b.particles {
		p.Age += dt
		if p.Age >= b.lifetime {
			continue
		}
		p.X += p.VX * sec
		p.Y += p.VY * sec
		alive = append(alive, p)
	}
	b.particles = alive
}

// Particles returns the live particles.
func (b *Burst) Particles() []Particle {
	return b.particles
}

// Active reports whether any particle is still alive.
func (b *Burst) Active() bool {
	return len(b.particles) > 0
}

// Clear removes every particle.
func (b *Burst) Clear() {
	b.particles = b.particles[:0]
}

// Fade returns the remaining life of p as a fraction in [0, 1].
func (b *Burst) Fade(p Particle) float64 {
	if b.lifetime <= 0 {
		return 0
	}
	f := 1 - float64(p.Age)/float64(b.lifetime)
	return math.Max(0, math.Min(1, f))
}
