package main

// viridisStops are evenly spaced samples of the matplotlib viridis colormap,
// the palette the lab's earlier plots used, so heatmaps stay comparable with
// historical figures.
var viridisStops = [][3]float64{
	{0.267004, 0.004874, 0.329415},
	{0.282623, 0.140926, 0.457517},
	{0.253935, 0.265254, 0.529983},
	{0.206756, 0.371758, 0.553117},
	{0.163625, 0.471133, 0.558148},
	{0.127568, 0.566949, 0.550556},
	{0.134692, 0.658636, 0.517649},
	{0.266941, 0.748751, 0.440573},
	{0.477504, 0.821444, 0.318195},
	{0.741388, 0.873449, 0.149561},
	{0.993248, 0.906157, 0.143936},
}

// viridis linearly interpolates the colormap at t in [0,1].
func viridis(t float64) (r, g, b float64) {
	if t <= 0 {
		s := viridisStops[0]
		return s[0], s[1], s[2]
	}
	if t >= 1 {
		s := viridisStops[len(viridisStops)-1]
		return s[0], s[1], s[2]
	}

	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	frac := pos - float64(i)

	lo, hi := viridisStops[i], viridisStops[i+1]
	return lo[0] + frac*(hi[0]-lo[0]),
		lo[1] + frac*(hi[1]-lo[1]),
		lo[2] + frac*(hi[2]-lo[2])
}
