package calibration

import "github.com/m-mizutani/goerr/v2"

// ErrUnknownChannel reports a risk curve lookup for a channel that is not in
// the calibration table. This is always a programming error upstream.
var ErrUnknownChannel = goerr.New("unknown injury channel")
