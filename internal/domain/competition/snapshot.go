package competition

import "encoding/json"

// TeamSnapshot is the team record as returned by the competitions service.
// Its shape is owned remotely and passed through untouched.
type TeamSnapshot json.RawMessage

// LeagueSnapshot is the league record as returned by the competitions service.
type LeagueSnapshot json.RawMessage

// MarshalJSON emits the raw remote document.
func (t TeamSnapshot) MarshalJSON() ([]byte, error) { return rawOrNull(t), nil }

// MarshalJSON emits the raw remote document.
func (l LeagueSnapshot) MarshalJSON() ([]byte, error) { return rawOrNull(l), nil }

// UnmarshalJSON keeps a copy of the raw remote document.
func (t *TeamSnapshot) UnmarshalJSON(b []byte) error {
	*t = append((*t)[:0], b...)
	return nil
}

// UnmarshalJSON keeps a copy of the raw remote document.
func (l *LeagueSnapshot) UnmarshalJSON(b []byte) error {
	*l = append((*l)[:0], b...)
	return nil
}

func rawOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
