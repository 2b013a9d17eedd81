package game

// KeyStatusMap tracks the best status seen for each letter this session.
// Statuses only move up: absent < present < correct.
type KeyStatusMap map[byte]Status

// Promote records st for letter unless the letter already has an equal or
// better status. It reports whether the entry changed.
func (k KeyStatusMap) Promote(letter byte, st Status) bool {
	if !st.Scored() {
		return false
	}
	if cur, ok := k[letter]; ok && cur.rank() >= st.rank() {
		return false
	}
	k[letter] = st
	return true
}

// strings returns a copy keyed by one-letter strings, for JSON.
func (k KeyStatusMap) strings() map[string]Status {
	out := make(map[string]Status, len(k))
	for l, st := range k {
		out[string(l)] = st
	}
	return out
}
