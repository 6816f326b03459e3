package models

// FeedQuery describes which posts a viewer may see. It is a plain value
// built once per request and handed to the repository, so the visibility
// rules can be tested without a database.
type FeedQuery struct {
	ViewerID uint
	// PeerIDs are the viewer's accepted connections.
	PeerIDs []uint
	// AuthorID restricts the feed to a single author when non-zero.
	AuthorID uint
	Limit    int
	Offset   int
}

// CanView reports whether the query's viewer may see a post with the
// given author and visibility. This is the same rule the repository
// translates to SQL.
func (q FeedQuery) CanView(authorID uint, visibility PostVisibility) bool {
	if authorID == q.ViewerID {
		return true
	}
	switch visibility {
	case PostVisibilityPublic:
		return true
	case PostVisibilityConnections:
		for _, id := range q.PeerIDs {
			if id == authorID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
