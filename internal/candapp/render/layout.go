package render

// Batch report geometry in mm. The key-value table starts below the banner
// and every non-wrapping row occupies exactly reportRowH; wrapping fields
// must come last so the fixed rows above them sit at identical positions on
// every page of a batch.
const (
	reportPageW  = 210.0
	reportMargin = 10.0
	bannerH      = 50.0
	tableTop     = 60.0
	labelColW    = 70.0
	valueColW    = reportPageW - 2*reportMargin - labelColW
	reportRowH   = 12.0
	wrapLineH    = 6.0
	qrW          = 40.0
)

// rowGeom is the computed position of one table row.
type rowGeom struct {
	Label string
	Y     float64
	H     float64
	Wrap  bool
}

// layoutRows computes the table geometry for one section. Positions depend
// only on the field list shape, never on value lengths: two records of the
// same kind always produce identical row positions. Wrapping rows report the
// single-line height; drawing lets them grow downward.
func layoutRows(fields []Field) []rowGeom {
	rows := make([]rowGeom, 0, len(fields))
	y := tableTop
	for _, f := range fields {
		h := float64(reportRowH)
		if f.Wrap {
			h = wrapLineH
		}
		rows = append(rows, rowGeom{Label: f.Label, Y: y, H: h, Wrap: f.Wrap})
		y += reportRowH
	}
	return rows
}
