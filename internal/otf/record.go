package otf

// recordKind tags the variant of record struct carried in a single
// msgpack-encoded frame, so the stream is self-describing without needing
// a side schema.
type recordKind uint8

const (
	kindCreator recordKind = iota
	kindTimerResolution
	kindProcessDef
	kindProcessBegin
	kindProcessEnd
	kindFunctionDef
	kindFileDef
	kindCounterDef
	kindEnter
	kindLeave
	kindFileBegin
	kindFileEnd
	kindCounterSample
)

// record is the on-wire envelope: every record is this same shape, with
// unused fields left at their zero value. A single shape keeps the
// msgpack encoder/decoder trivial and the stream append-only.
type record struct {
	Kind        recordKind `msgpack:"k"`
	Timestamp   int64      `msgpack:"ts,omitempty"`
	ID          uint64     `msgpack:"id,omitempty"`
	ProcessID   uint64     `msgpack:"pid,omitempty"`
	Name        string     `msgpack:"name,omitempty"`
	OpCode      int        `msgpack:"op,omitempty"`
	Length      int64      `msgpack:"len,omitempty"`
	Value       float64    `msgpack:"val,omitempty"`
	TickMicros  int64      `msgpack:"tick,omitempty"`
	CreatorName string     `msgpack:"creator,omitempty"`
}
