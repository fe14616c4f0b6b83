package document

// Length is a distance in English Metric Units (914400 per inch), the unit
// OOXML uses for drawing geometry. Text geometry is derived from it.
type Length int64

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	emuPerTwip  = 635
)

// Pt returns a length of n points.
func Pt(n float64) Length {
	return Length(n * emuPerPoint)
}

// Inches returns a length of n inches.
func Inches(n float64) Length {
	return Length(n * emuPerInch)
}

// Points reports the length in points.
func (l Length) Points() float64 {
	return float64(l) / emuPerPoint
}

// Twips reports the length in twentieths of a point, used for indentation
// and spacing.
func (l Length) Twips() int {
	return int(l / emuPerTwip)
}

// HalfPoints reports the length in half points, used for font sizes.
func (l Length) HalfPoints() int {
	return int(l * 2 / emuPerPoint)
}
