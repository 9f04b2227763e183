package jtrace

// Flags is a bitmask selecting which sinks are active. FlagOff is mutually
// exclusive with the rest; FlagEcho, FlagBinary and FlagSummary combine
// freely. A single process-wide value is frozen between Init and Fini.
type Flags uint32

const FlagOff Flags = 0

const (
	// FlagEcho enables the line-oriented textual echo sink.
	FlagEcho Flags = 1 << iota
	// FlagBinary enables the binary trace-file sink.
	FlagBinary
	// FlagSummary enables the in-memory aggregated summary sink.
	FlagSummary
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// String renders the flag set the way it would have been spelled in
// JULEA_TRACE, for diagnostics.
func (f Flags) String() string {
	if f == FlagOff {
		return "off"
	}
	var parts []string
	if f.has(FlagEcho) {
		parts = append(parts, "echo")
	}
	if f.has(FlagBinary) {
		parts = append(parts, "otf")
	}
	if f.has(FlagSummary) {
		parts = append(parts, "summary")
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
