package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/cli/config"
	"github.com/reneeyyx/Safety1st/pkg/domain/model/calibration"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

func writeCalibrationFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644)).Required()
	return path
}

func TestCalibrationConfigureWithoutFile(t *testing.T) {
	cfg := config.NewCalibrationForTest("")

	cal, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.V(t, cal.Set).Equal(calibration.Default().Set)
}

func TestLoadCalibrationOverrides(t *testing.T) {
	path := writeCalibrationFile(t, `
set = "regional_2026"
belt_stiffness_n_per_m = 62000.0

[curves.head_hic15]
mu = 7.1
sigma = 0.65

[curves.femur_load_kn]
severity = "AIS3+"
provisional = true

[neck_intercepts.tension-extension]
force_n = 6160.0
moment_nm = 135.0
`)

	cal, err := config.LoadCalibration(path)
	gt.NoError(t, err).Required()

	gt.V(t, cal.Set).Equal("regional_2026")
	gt.Number(t, cal.BeltStiffness).Equal(62000.0)

	head := cal.Curves[types.ChannelHeadHIC15]
	gt.Number(t, head.Mu).Equal(7.1)
	gt.Number(t, head.Sigma).Equal(0.65)
	// Untouched fields keep their built-in values
	gt.V(t, head.Form).Equal(calibration.FormProbitLogNormal)

	femur := cal.Curves[types.ChannelFemurLoadKN]
	gt.V(t, femur.Severity).Equal("AIS3+")
	gt.B(t, femur.Provisional).True()
	gt.Number(t, femur.Beta1).Equal(calibration.Default().Curves[types.ChannelFemurLoadKN].Beta1)

	ic, err := cal.NeckIntercepts.Intercepts(types.NeckTensionExtension)
	gt.NoError(t, err).Required()
	gt.Number(t, ic.ForceN).Equal(6160.0)
	gt.Number(t, ic.MomentNm).Equal(135.0)

	// Other modes keep the built-in intercepts
	other, err := cal.NeckIntercepts.Intercepts(types.NeckTensionFlexion)
	gt.NoError(t, err).Required()
	gt.Number(t, other.ForceN).Equal(6806.0)
}

func TestLoadCalibrationExplicitZeroOverride(t *testing.T) {
	// A pointer field set to 0 in the file must override, and the merged
	// table must then fail validation for a zero slope.
	path := writeCalibrationFile(t, `
[curves.chest_a3ms]
k = 0.0
`)

	_, err := config.LoadCalibration(path)
	gt.Error(t, err)
}

func TestLoadCalibrationRejectsUnknownChannel(t *testing.T) {
	path := writeCalibrationFile(t, `
[curves.pelvis_load]
mu = 1.0
`)

	_, err := config.LoadCalibration(path)
	gt.Error(t, err)
}

func TestLoadCalibrationRejectsUnknownNeckMode(t *testing.T) {
	path := writeCalibrationFile(t, `
[neck_intercepts.lateral-shear]
force_n = 1000.0
`)

	_, err := config.LoadCalibration(path)
	gt.Error(t, err)
}

func TestLoadCalibrationRejectsInvalidResult(t *testing.T) {
	path := writeCalibrationFile(t, `
[curves.head_hic15]
sigma = -1.0
`)

	_, err := config.LoadCalibration(path)
	gt.Error(t, err)
}

func TestLoadCalibrationMissingFile(t *testing.T) {
	_, err := config.LoadCalibration(filepath.Join(t.TempDir(), "absent.toml"))
	gt.Error(t, err)
}

func TestLoadCalibrationMalformedTOML(t *testing.T) {
	path := writeCalibrationFile(t, `set = [unclosed`)

	_, err := config.LoadCalibration(path)
	gt.Error(t, err)
}
