package desktop

import (
	"math/rand/v2"
	"time"
)

const (
	// CatsPerTerminal is how many terminals earn one sprite.
	CatsPerTerminal = 5
	// MaxSprites caps the overlay.
	MaxSprites = 1000
	// SpriteWidth is the cell width of the sprite glyph.
	SpriteWidth = 2

	minSpeed = 4.0
	maxSpeed = 14.0
)

// TargetCount is the sprite count for a logical terminal count.
func TargetCount(count int) int {
	return max(0, min(count/CatsPerTerminal, MaxSprites))
}

// Sprite is one bouncing decoration.
type Sprite struct {
	ID int
	Kinetic
}

// Overlay is the decorative sprite layer above the windows.
type Overlay struct {
	sprites []Sprite
	nextID  int
	width   int
	height  int
	rng     *rand.Rand
}

// NewOverlay returns an empty overlay.
func NewOverlay(rng *rand.Rand) *Overlay {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Overlay{rng: rng, width: 120, height: 40}
}

// Sync adds or removes sprites at the tail to match TargetCount(count).
func (o *Overlay) Sync(count int) {
	target := TargetCount(count)
	if len(o.sprites) > target {
		o.sprites = o.sprites[:target]
		return
	}
	for len(o.sprites) < target {
		o.sprites = append(o.sprites, o.newSprite())
	}
}

// Clear removes every sprite until the next Sync.
func (o *Overlay) Clear() { o.sprites = o.sprites[:0] }

// Len is the number of live sprites.
func (o *Overlay) Len() int { return len(o.sprites) }

// Sprites returns a copy of the live sprites.
func (o *Overlay) Sprites() []Sprite {
	return append([]Sprite(nil), o.sprites...)
}

// SetBounds resizes the area sprites bounce in.
func (o *Overlay) SetBounds(width, height int) {
	o.width = max(1, width)
	o.height = max(1, height)
	for i := range o.sprites {
		ReflectBounds(&o.sprites[i].Kinetic, o.maxX(), o.height)
	}
}

// Step moves every sprite by dt and bounces it off the edges.
func (o *Overlay) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs <= 0 {
		return
	}
	for i := range o.sprites {
		k := &o.sprites[i].Kinetic
		Integrate(k, secs)
		ReflectBounds(k, o.maxX(), o.height)
	}
}

func (o *Overlay) maxX() int {
	return max(1, o.width-SpriteWidth+1)
}

func (o *Overlay) newSprite() Sprite {
	o.nextID++
	return Sprite{
		ID: o.nextID,
		Kinetic: Kinetic{
			X:  float64(o.rng.IntN(o.maxX())),
			Y:  float64(o.rng.IntN(o.height)),
			VX: o.velocity(),
			VY: o.velocity() / 2,
		},
	}
}

func (o *Overlay) velocity() float64 {
	v := minSpeed + o.rng.Float64()*(maxSpeed-minSpeed)
	if o.rng.IntN(2) == 0 {
		return -v
	}
	return v
}
