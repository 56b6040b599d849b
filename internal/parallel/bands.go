package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides [y0, y1) into at most n contiguous bands of at least
// minRows rows each. Band sizes differ by at most one row. An empty range
// yields no bands.
func SplitRows(y0, y1, n, minRows int) []Band {
	rows := y1 - y0
	if rows <= 0 {
		return nil
	}
	minRows = max(minRows, 1)
	n = max(min(n, rows/minRows), 1)

	bands := make([]Band, 0, n)
	base, extra := rows/n, rows%n
	y := y0
	for i := range n {
		h := base
		if i < extra {
			h++
		}
		bands = append(bands, Band{Y0: y, Y1: y + h})
		y += h
	}
	return bands
}

// ForEachBand splits [y0, y1) into bands and runs fn on each band
// concurrently. Two bands per worker leave room for stealing. It returns
// after every band has been processed.
func (p *WorkerPool) ForEachBand(y0, y1, minRows int, fn func(Band)) {
	bands := SplitRows(y0, y1, p.workers*2, minRows)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
