package abstat

import (
	"abkit/domain/core"
	"abkit/domain/experiment"
)

// Report summarises a two-arm experiment read at a fixed significance level
type Report struct {
	ID                 core.ReportID       `json:"id" yaml:"id"`
	Control            experiment.Sample   `json:"control" yaml:"control"`
	Test               experiment.Sample   `json:"test" yaml:"test"`
	SigLevel           float64             `json:"sig_level" yaml:"sig_level"`
	ControlRate        float64             `json:"control_rate" yaml:"control_rate"`
	TestRate           float64             `json:"test_rate" yaml:"test_rate"`
	Lift               float64             `json:"lift" yaml:"lift"` // TestRate - ControlRate
	PooledProbability  float64             `json:"pooled_probability" yaml:"pooled_probability"`
	PooledSE           float64             `json:"pooled_se" yaml:"pooled_se"`
	CriticalZ          float64             `json:"critical_z" yaml:"critical_z"`
	DifferenceInterval experiment.Interval `json:"difference_interval" yaml:"difference_interval"`
	PValue             float64             `json:"p_value" yaml:"p_value"`
	Power              float64             `json:"power" yaml:"power"`
	Significant        bool                `json:"significant" yaml:"significant"`
}

// Analyze computes the pooled statistics, the confidence interval on the lift,
// the one-sided p-value and the achieved power for a control/test pair.
func Analyze(control, test experiment.Sample, sigLevel float64) (*Report, error) {
	if err := checkOpenUnit("sigLevel", sigLevel); err != nil {
		return nil, err
	}

	pHat, err := PooledProbability(control.N, test.N, control.X, test.X)
	if err != nil {
		return nil, err
	}
	se, err := PooledStandardError(control.N, test.N, control.X, test.X)
	if err != nil {
		return nil, err
	}
	z, err := CriticalZ(sigLevel, true)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:                core.NewReportID(),
		Control:           control,
		Test:              test,
		SigLevel:          sigLevel,
		ControlRate:       control.Rate(),
		TestRate:          test.Rate(),
		PooledProbability: pHat,
		PooledSE:          se,
		CriticalZ:         z,
	}
	report.Lift = report.TestRate - report.ControlRate
	report.DifferenceInterval = experiment.Interval{
		Lower: report.Lift - z*se,
		Upper: report.Lift + z*se,
	}

	report.PValue, err = PValue(control.N, test.N, report.ControlRate, report.Lift)
	if err != nil {
		return nil, err
	}

	// se is zero only when no arm saw a success (or every trial succeeded)
	if se > 0 {
		report.Power, err = Power(se, report.Lift, sigLevel)
		if err != nil {
			return nil, err
		}
	}

	report.Significant = report.PValue < sigLevel
	return report, nil
}
