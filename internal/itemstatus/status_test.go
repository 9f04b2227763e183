package itemstatus

import (
	"testing"

	"github.com/maruel/ut"
)

func TestRecordEmpty(t *testing.T) {
	r := New()
	ut.AssertEqual(t, int64(0), r.TotalHits())
	ut.AssertEqual(t, int64(0), r.TotalMisses())
	ut.AssertEqual(t, int64(0), r.TotalBytesHits())
	ut.AssertEqual(t, int64(0), r.TotalBytesMisses())
}

func TestRecordHitsAndMisses(t *testing.T) {
	r := New()
	r.RecordHit(3)
	r.RecordMiss(5)
	r.RecordMiss(7)

	ut.AssertEqual(t, int64(1), r.TotalHits())
	ut.AssertEqual(t, int64(2), r.TotalMisses())
	ut.AssertEqual(t, int64(3), r.TotalBytesHits())
	ut.AssertEqual(t, int64(12), r.TotalBytesMisses())
}

func TestRecordBSONRoundTrip(t *testing.T) {
	r := New()
	r.RecordHit(10)
	r.RecordMiss(20)

	data, err := r.MarshalBSON()
	ut.AssertEqual(t, nil, err)

	out := New()
	ut.AssertEqual(t, nil, out.UnmarshalBSON(data))
	ut.AssertEqual(t, r.TotalHits(), out.TotalHits())
	ut.AssertEqual(t, r.TotalMisses(), out.TotalMisses())
	ut.AssertEqual(t, r.TotalBytesHits(), out.TotalBytesHits())
	ut.AssertEqual(t, r.TotalBytesMisses(), out.TotalBytesMisses())
}
