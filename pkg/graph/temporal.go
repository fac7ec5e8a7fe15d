package graph

// admits reports whether r passes the temporal filter for the query
// timestamp ts (microseconds). A nil ts means "currently live": equivalent
// to ts = +infinity, so any non-tombstoned record passes regardless of its
// ValidTo. This asymmetry — an absent as-of is NOT the same as "valid
// right now bounded by ValidTo" — is deliberate and documented in spec §4.B.
//
// A non-nil ts admits r iff (ValidFrom absent or ValidFrom <= ts) and
// (ValidTo absent or ts < ValidTo).
func admits(r EdgeRecord, ts *int64) bool {
	if r.Deleted {
		return false
	}
	if ts == nil {
		return true
	}
	if r.ValidFrom != nil && *r.ValidFrom > *ts {
		return false
	}
	if r.ValidTo != nil && *ts >= *r.ValidTo {
		return false
	}
	return true
}
