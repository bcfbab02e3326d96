package litematic

// axisLen returns the absolute length of a signed size component.
func axisLen(size int) int {
	if size < 0 {
		return -size
	}
	return size
}

// localBounds returns the local-space [min,max] bounds for an axis of the
// given signed size: [0, L-1] when size > 0, [-(L-1), 0] when size < 0.
func localBounds(size int) (min, max int) {
	l := axisLen(size)
	if size >= 0 {
		return 0, l - 1
	}
	return -(l - 1), 0
}

// schemBounds returns the schematic-space [min,max] bounds for an axis
// given the region's origin component and signed size.
func schemBounds(origin, size int) (min, max int) {
	l := axisLen(size)
	if size >= 0 {
		return origin, origin + l - 1
	}
	return origin - (l - 1), origin
}

// toSchem converts a local coordinate to schematic space given the origin
// and signed size of the axis.
func toSchem(local, origin, size int) int {
	if size >= 0 {
		return origin + local
	}
	return origin - local
}
