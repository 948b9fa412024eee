package sample

// Status is the tri-state classification of a measured sample against the
// reference bands. The wire values keep the pt-BR strings older records were
// stored with, so existing history slots read back unchanged.
type Status string

const (
	StatusOK         Status = "Padrão OK"
	StatusWarning    Status = "Atenção"
	StatusOutOfRange Status = "Fora do Padrão"
)

// Reference bands in millimeters. The tolerance band stretches each side to
// [min*0.9, max*1.1].
const (
	HeightMinMm = 8.0
	HeightMaxMm = 12.0
	WidthMinMm  = 20.0
	WidthMaxMm  = 30.0
	LengthMinMm = 25.0
	LengthMaxMm = 35.0

	ToleranceMinFactor = 0.9
	ToleranceMaxFactor = 1.1
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOK, StatusWarning, StatusOutOfRange:
		return true
	}

	return false
}

type dimensionState int

const (
	dimensionOk dimensionState = iota
	dimensionWarn
	dimensionError
)

// Classify maps three dimensions onto the overall status. All ok gives
// StatusOK; any warn without an error gives StatusWarning; anything else is
// StatusOutOfRange. Pure and total over finite inputs; callers reject NaN
// and ±Inf with ValidateDimensions before calling.
func Classify(heightMm, widthMm, lengthMm float64) Status {
	h := classifyDimension(heightMm, HeightMinMm, HeightMaxMm)
	w := classifyDimension(widthMm, WidthMinMm, WidthMaxMm)
	l := classifyDimension(lengthMm, LengthMinMm, LengthMaxMm)

	if h == dimensionOk && w == dimensionOk && l == dimensionOk {
		return StatusOK
	}

	if h != dimensionError && w != dimensionError && l != dimensionError {
		return StatusWarning
	}

	return StatusOutOfRange
}

func classifyDimension(value, min, max float64) dimensionState {
	if value >= min && value <= max {
		return dimensionOk
	}

	if value >= min*ToleranceMinFactor && value <= max*ToleranceMaxFactor {
		return dimensionWarn
	}

	return dimensionError
}
