package printer

// ESC/POS commands. Only what a kitchen receipt needs.
var (
	cmdInit   = []byte{0x1B, 0x40}             // ESC @
	cmdSilent = []byte{0x1B, 0x35, 0x01}       // ESC 5 1, buzzer off
	cmdCut    = []byte{0x1D, 'V', 0x41, 0x03} // GS V A 3, feed and partial cut
)

// Frame wraps receipt text so the printer resets, stays quiet and cuts
// the paper after the last line.
func Frame(text []byte) []byte {
	out := make([]byte, 0, len(cmdInit)+len(cmdSilent)+len(text)+len(cmdCut))
	out = append(out, cmdInit...)
	out = append(out, cmdSilent...)
	out = append(out, text...)
	out = append(out, cmdCut...)
	return out
}
