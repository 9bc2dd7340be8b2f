package delivery_http

import (
	"time"

	"yatube-api/internal/model"
)

// Request bodies. Validation tags drive the field-keyed 400 responses.

type PostRequest struct {
	Text  string  `json:"text" validate:"required"`
	Image *string `json:"image"`
	Group *int64  `json:"group"`
}

type PostUpdateRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
	Group *int64  `json:"group"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentUpdateRequest struct {
	Text *string `json:"text"`
}

type FollowRequest struct {
	Following string `json:"following" validate:"required"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Response bodies. Authors and follow endpoints render usernames, not ids.

type PostResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	Group     *int64    `json:"group"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Post    int64     `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type GroupResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

func newPostResponse(p *model.PostDetailed) PostResponse {
	return PostResponse{
		ID:        p.Post.ID,
		Author:    p.Author.Username,
		Text:      p.Post.Text,
		Image:     p.Post.Image,
		Group:     p.Post.GroupID,
		CreatedAt: p.Post.CreatedAt.Time,
	}
}

func newPostResponseList(posts []*model.PostDetailed) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

func newCommentResponse(c *model.CommentDetailed) CommentResponse {
	return CommentResponse{
		ID:      c.Comment.ID,
		Author:  c.Author.Username,
		Post:    c.Comment.PostID,
		Text:    c.Comment.Text,
		Created: c.Comment.Created.Time,
	}
}

func newCommentResponseList(comments []*model.CommentDetailed) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return out
}

func newGroupResponse(g *model.Group) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func newGroupResponseList(groups []*model.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, newGroupResponse(g))
	}
	return out
}

func newFollowResponse(f *model.FollowDetailed) FollowResponse {
	return FollowResponse{
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}

func newFollowResponseList(follows []*model.FollowDetailed) []FollowResponse {
	out := make([]FollowResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, newFollowResponse(f))
	}
	return out
}
