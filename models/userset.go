package models

// UserSet gives O(1) membership checks over the user-id arrays stored on
// a post document (likes, bookmarks). The document keeps a plain array;
// the set only lives for the duration of a toggle.
type UserSet map[string]struct{}

func NewUserSet(ids []string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s UserSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ToggleMember flips id's membership in members, returning the resulting
// array and whether id is a member afterwards. Survivor order is
// preserved; a newly added id goes to the end.
func ToggleMember(members []string, id string) ([]string, bool) {
	if NewUserSet(members).Has(id) {
		out := make([]string, 0, len(members))
		for _, m := range members {
			if m != id {
				out = append(out, m)
			}
		}
		return out, false
	}
	out := make([]string, 0, len(members)+1)
	out = append(out, members...)
	return append(out, id), true
}
