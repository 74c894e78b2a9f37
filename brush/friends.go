package brush

// FriendList is the set of brushes a terrain brush does not border against.
// Hate inverts it: only the listed brushes get a border.
type FriendList struct {
	IDs  []ID
	Hate bool
}

// Has reports whether id counts as a friend.
func (f *FriendList) Has(id ID) bool {
	if f == nil {
		return false
	}
	found := false
	for _, fid := range f.IDs {
		if fid == id || fid == FriendOfAll {
			found = true
			break
		}
	}
	if f.Hate {
		return !found
	}
	return found
}

// Add appends id unless it is already listed.
func (f *FriendList) Add(id ID) {
	for _, fid := range f.IDs {
		if fid == id {
			return
		}
	}
	f.IDs = append(f.IDs, id)
}

// FriendOf consults b's friend list for other. The relation is not
// symmetric: callers ask the neighbour's brush about the current tile's id.
func (b *Brush) FriendOf(other ID) bool {
	return b.Friends().Has(other)
}
