package report

import "github.com/cliniform/bpvar-cli/internal/variability"

// Display strings for the core's closed enums live here so the engine stays
// presentation-agnostic.

func stageLabel(s variability.Stage) string {
	switch s {
	case variability.StageNormal:
		return "Normal (<120/<80)"
	case variability.StageElevated:
		return "Elevated (120-129/<80)"
	case variability.Stage1:
		return "Stage 1 HTN (130-139/80-89)"
	case variability.Stage2:
		return "Stage 2 HTN (>=140/>=90)"
	case variability.StageCrisis:
		return "Hypertensive Crisis (>180/>120)"
	}
	return "-"
}

func stageShort(s variability.Stage) string {
	switch s {
	case variability.StageNormal:
		return "Normal"
	case variability.StageElevated:
		return "Elevated"
	case variability.Stage1:
		return "Stage 1"
	case variability.Stage2:
		return "Stage 2"
	case variability.StageCrisis:
		return "Crisis"
	}
	return "-"
}

func dippingLabel(d variability.DippingStatus) string {
	switch d {
	case variability.ReverseDipper:
		return "Reverse Dipper (<0%)"
	case variability.NonDipper:
		return "Non-Dipper (<10%)"
	case variability.NormalDipper:
		return "Normal Dipper (10-20%)"
	case variability.ExtremeDipper:
		return "Extreme Dipper (>20%)"
	}
	return "-"
}
