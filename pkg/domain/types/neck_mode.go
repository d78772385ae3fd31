package types

import "github.com/m-mizutani/goerr/v2"

// NeckLoadMode classifies the instantaneous neck loading condition by the
// signs of the axial force (tension/compression) and the bending moment
// (flexion/extension). Each mode carries its own critical intercept pair.
type NeckLoadMode string

const (
	NeckTensionFlexion       NeckLoadMode = "tension-flexion"
	NeckTensionExtension     NeckLoadMode = "tension-extension"
	NeckCompressionFlexion   NeckLoadMode = "compression-flexion"
	NeckCompressionExtension NeckLoadMode = "compression-extension"
)

// AllNeckLoadModes lists the four loading modes in a stable order
var AllNeckLoadModes = []NeckLoadMode{
	NeckTensionFlexion,
	NeckTensionExtension,
	NeckCompressionFlexion,
	NeckCompressionExtension,
}

// Validate checks if the NeckLoadMode is one of the four known modes
func (m NeckLoadMode) Validate() error {
	switch m {
	case NeckTensionFlexion, NeckTensionExtension, NeckCompressionFlexion, NeckCompressionExtension:
		return nil
	default:
		return goerr.New("invalid neck load mode", goerr.V("mode", m))
	}
}

// String returns the string representation of NeckLoadMode
func (m NeckLoadMode) String() string {
	return string(m)
}
