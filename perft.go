package bitchess

// Perft counts the leaf nodes of the legal move tree rooted at p, depth
// plies deep. At the last ply the per-batch move counts are summed without
// applying, which is what makes perft usable as a generator benchmark.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var nodes uint64
	p.GenerateMoves(func(pm PieceMoves) bool {
		if depth == 1 {
			nodes += uint64(pm.Len())
			return false
		}
		pm.Each(func(m Move) {
			next := p.Clone()
			if next.Apply(m) == nil {
				nodes += Perft(&next, depth-1)
			}
		})
		return false
	})
	return nodes
}
