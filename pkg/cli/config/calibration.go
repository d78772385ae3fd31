package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model/calibration"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Calibration holds CLI flags for the risk calibration table. Without a
// file the built-in calibration set is used as-is; a file overrides only
// the fields it names, on top of the built-in set.
type Calibration struct {
	path string
}

// Flags returns CLI flags for calibration configuration
func (c *Calibration) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "calibration",
			Usage:       "Path to a TOML calibration override file",
			Sources:     cli.EnvVars("SAFETY1ST_CALIBRATION"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured calibration file path
func (c *Calibration) Path() string {
	return c.path
}

// Configure returns the calibration table, loading and applying the
// override file when one is configured. The merged table is validated
// before return.
func (c *Calibration) Configure() (*calibration.Calibration, error) {
	if c.path == "" {
		return calibration.Default(), nil
	}
	return LoadCalibration(c.path)
}

// calibrationFile mirrors the TOML calibration override layout. Pointer
// fields distinguish "absent" from an explicit zero so an override can set
// a parameter to 0.
type calibrationFile struct {
	Set               string  `toml:"set"`
	NeckNaturalFreqHz float64 `toml:"neck_natural_freq_hz"`
	NeckDampingRatio  float64 `toml:"neck_damping_ratio"`
	BeltStiffness     float64 `toml:"belt_stiffness_n_per_m"`

	Curves         map[string]curveOverride     `toml:"curves"`
	NeckIntercepts map[string]interceptOverride `toml:"neck_intercepts"`
}

type curveOverride struct {
	Form        *string  `toml:"form"`
	Mu          *float64 `toml:"mu"`
	Sigma       *float64 `toml:"sigma"`
	Beta0       *float64 `toml:"beta0"`
	Beta1       *float64 `toml:"beta1"`
	X50         *float64 `toml:"x50"`
	K           *float64 `toml:"k"`
	Units       *string  `toml:"units"`
	Severity    *string  `toml:"severity"`
	Source      *string  `toml:"source"`
	Provisional *bool    `toml:"provisional"`
	Diagnostic  *bool    `toml:"diagnostic"`
}

type interceptOverride struct {
	ForceN   *float64 `toml:"force_n"`
	MomentNm *float64 `toml:"moment_nm"`
}

// LoadCalibration loads a TOML calibration override file and applies it on
// top of the built-in calibration set
func LoadCalibration(path string) (*calibration.Calibration, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read calibration file", goerr.V("path", path))
	}

	var file calibrationFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML calibration", goerr.V("path", path))
	}

	cal := calibration.Default()
	if err := file.apply(cal); err != nil {
		return nil, goerr.Wrap(err, "failed to apply calibration overrides", goerr.V("path", path))
	}

	if err := cal.Validate(); err != nil {
		return nil, goerr.Wrap(err, "calibration validation failed", goerr.V("path", path))
	}

	return cal, nil
}

func (f *calibrationFile) apply(cal *calibration.Calibration) error {
	if f.Set != "" {
		cal.Set = f.Set
	}
	if f.NeckNaturalFreqHz != 0 {
		cal.NeckNaturalFreqHz = f.NeckNaturalFreqHz
	}
	if f.NeckDampingRatio != 0 {
		cal.NeckDampingRatio = f.NeckDampingRatio
	}
	if f.BeltStiffness != 0 {
		cal.BeltStiffness = f.BeltStiffness
	}

	for key, override := range f.Curves {
		channel := types.InjuryChannel(key)
		if err := channel.Validate(); err != nil {
			return goerr.Wrap(err, "calibration override names unknown channel")
		}

		curve := cal.Curves[channel]
		if override.Form != nil {
			curve.Form = calibration.CurveForm(*override.Form)
		}
		if override.Mu != nil {
			curve.Mu = *override.Mu
		}
		if override.Sigma != nil {
			curve.Sigma = *override.Sigma
		}
		if override.Beta0 != nil {
			curve.Beta0 = *override.Beta0
		}
		if override.Beta1 != nil {
			curve.Beta1 = *override.Beta1
		}
		if override.X50 != nil {
			curve.X50 = *override.X50
		}
		if override.K != nil {
			curve.K = *override.K
		}
		if override.Units != nil {
			curve.Units = *override.Units
		}
		if override.Severity != nil {
			curve.Severity = *override.Severity
		}
		if override.Source != nil {
			curve.Source = *override.Source
		}
		if override.Provisional != nil {
			curve.Provisional = *override.Provisional
		}
		if override.Diagnostic != nil {
			curve.Diagnostic = *override.Diagnostic
		}
		cal.Curves[channel] = curve
	}

	for key, override := range f.NeckIntercepts {
		mode := types.NeckLoadMode(key)
		if err := mode.Validate(); err != nil {
			return goerr.Wrap(err, "calibration override names unknown neck load mode")
		}

		ic := cal.NeckIntercepts.Modes[mode]
		if override.ForceN != nil {
			ic.ForceN = *override.ForceN
		}
		if override.MomentNm != nil {
			ic.MomentNm = *override.MomentNm
		}
		cal.NeckIntercepts.Modes[mode] = ic
	}

	return nil
}
