package list

import "encoding/json"

// The persisted form is the plain element sequence. Decoding rebuilds the
// tree through the O(n) balanced construction instead of replaying inserts,
// so the physical shape after a round trip is canonical, not historical.

func (l *xTreeList[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToSlice())
}

func (l *xTreeList[E]) UnmarshalJSON(data []byte) error {
	var values []E
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	l.modCount++
	l.stats.RecordElementCount(int64(len(values)) - l.size)
	if len(values) == 0 {
		l.root = nil
		l.size = 0
		return nil
	}
	l.root = newXTreeListSubtree(values, 0, int64(len(values))-1, 0, nil, nil)
	l.size = int64(len(values))
	return nil
}

// A window encodes like any sequence. Decoding replaces the window contents
// in place, which the backing list observes as a range splice.

func (v *xTreeListView[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToSlice())
}

func (v *xTreeListView[E]) UnmarshalJSON(data []byte) error {
	var values []E
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	v.Clear()
	v.AddAll(values...)
	return nil
}
