package types

import "github.com/m-mizutani/goerr/v2"

// InjuryChannel identifies a body-region injury mechanism with a
// calibrated risk curve in the curve library
type InjuryChannel string

const (
	ChannelHeadHIC15    InjuryChannel = "head_hic15"
	ChannelNeckNij      InjuryChannel = "neck_nij"
	ChannelThoraxDeflMM InjuryChannel = "thorax_deflection_mm"
	ChannelFemurLoadKN  InjuryChannel = "femur_load_kn"
	ChannelChestA3ms    InjuryChannel = "chest_a3ms"
)

// Validate checks if the InjuryChannel is a known channel
func (c InjuryChannel) Validate() error {
	switch c {
	case ChannelHeadHIC15, ChannelNeckNij, ChannelThoraxDeflMM, ChannelFemurLoadKN, ChannelChestA3ms:
		return nil
	default:
		return goerr.New("invalid injury channel", goerr.V("channel", c))
	}
}

// String returns the string representation of InjuryChannel
func (c InjuryChannel) String() string {
	return string(c)
}
