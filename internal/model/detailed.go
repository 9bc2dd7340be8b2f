package model

// Detailed variants join the owning row with the users it references,
// so the delivery layer can render usernames instead of ids.

type PostDetailed struct {
	Post   *Post
	Author *User
}

// PostPage is a listing window together with the unwindowed total, the
// unit a list cache stores and returns as a whole.
type PostPage struct {
	Posts []*PostDetailed
	Total int
}

type CommentDetailed struct {
	Comment *Comment
	Author  *User
}

type FollowDetailed struct {
	Follow    *Follow
	User      *User
	Following *User
}
