// Package itemstatus is a stand-in for JULEA's item-status record: a
// small hit/miss/byte accounting structure attached to a stored item,
// (de)serialized with BSON the way the wider framework persists item
// metadata in its backing store.
package itemstatus

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson"
)

// Record accumulates hit/miss counters and byte totals for one item. All
// fields are accessed through atomics so a Record can be shared across
// goroutines (e.g. concurrent storageclient operations against the same
// item) without an external lock.
type Record struct {
	hits      atomic.Int64
	misses    atomic.Int64
	bytesHit  atomic.Int64
	bytesMiss atomic.Int64
}

// New returns a zeroed Record.
func New() *Record {
	return &Record{}
}

// RecordHit accounts for a successful lookup of n bytes.
func (r *Record) RecordHit(n int64) {
	r.hits.Add(1)
	r.bytesHit.Add(n)
}

// RecordMiss accounts for a failed lookup followed by a push of n bytes.
func (r *Record) RecordMiss(n int64) {
	r.misses.Add(1)
	r.bytesMiss.Add(n)
}

// TotalHits returns the number of recorded hits.
func (r *Record) TotalHits() int64 { return r.hits.Load() }

// TotalMisses returns the number of recorded misses.
func (r *Record) TotalMisses() int64 { return r.misses.Load() }

// TotalBytesHits returns the cumulative byte count of all hits.
func (r *Record) TotalBytesHits() int64 { return r.bytesHit.Load() }

// TotalBytesMisses returns the cumulative byte count of all misses.
func (r *Record) TotalBytesMisses() int64 { return r.bytesMiss.Load() }

// snapshot is the BSON wire shape for a Record: atomics don't marshal on
// their own, so MarshalBSON takes a point-in-time copy into this plain
// struct first.
type snapshot struct {
	Hits      int64 `bson:"hits"`
	Misses    int64 `bson:"misses"`
	BytesHit  int64 `bson:"bytes_hit"`
	BytesMiss int64 `bson:"bytes_miss"`
}

// MarshalBSON implements bson.Marshaler by encoding a snapshot of the
// current counter values.
func (r *Record) MarshalBSON() ([]byte, error) {
	return bson.Marshal(snapshot{
		Hits:      r.hits.Load(),
		Misses:    r.misses.Load(),
		BytesHit:  r.bytesHit.Load(),
		BytesMiss: r.bytesMiss.Load(),
	})
}

// UnmarshalBSON implements bson.Unmarshaler, replacing r's counters with
// the decoded snapshot's values. It is meant for loading a previously
// persisted Record, not for merging into a live one.
func (r *Record) UnmarshalBSON(data []byte) error {
	var s snapshot
	if err := bson.Unmarshal(data, &s); err != nil {
		return err
	}
	r.hits.Store(s.Hits)
	r.misses.Store(s.Misses)
	r.bytesHit.Store(s.BytesHit)
	r.bytesMiss.Store(s.BytesMiss)
	return nil
}
