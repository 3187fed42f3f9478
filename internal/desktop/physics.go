package desktop

// Kinetic is a sprite's sub-cell position and velocity in cells per second.
type Kinetic struct {
	X, Y   float64
	VX, VY float64
}

// Integrate advances position by velocity over dt seconds and returns the
// resulting cell.
func Integrate(k *Kinetic, dt float64) (x, y int) {
	k.X += k.VX * dt
	k.Y += k.VY * dt
	return GridPos(k)
}

// ReflectBoundsX keeps the sprite inside [minX, maxX), reversing VX on contact.
func ReflectBoundsX(k *Kinetic, minX, maxX int) bool {
	x := int(k.X)
	if k.X < float64(minX) {
		k.X = float64(minX)
		k.VX = -k.VX
		return true
	}
	if x >= maxX {
		k.X = float64(max(minX, maxX-1))
		k.VX = -k.VX
		return true
	}
	return false
}

// ReflectBoundsY keeps the sprite inside [minY, maxY), reversing VY on contact.
func ReflectBoundsY(k *Kinetic, minY, maxY int) bool {
	y := int(k.Y)
	if k.Y < float64(minY) {
		k.Y = float64(minY)
		k.VY = -k.VY
		return true
	}
	if y >= maxY {
		k.Y = float64(max(minY, maxY-1))
		k.VY = -k.VY
		return true
	}
	return false
}

// ReflectBounds handles both axes, reporting whether either reflected.
func ReflectBounds(k *Kinetic, width, height int) bool {
	rx := ReflectBoundsX(k, 0, width)
	ry := ReflectBoundsY(k, 0, height)
	return rx || ry
}

// GridPos returns the integer cell under the sprite.
func GridPos(k *Kinetic) (x, y int) {
	return int(k.X), int(k.Y)
}
