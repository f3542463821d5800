package domain

import (
	"errors"
	"time"
)

var ErrBlogNotFound = errors.New("blog not found")
var ErrBlogInvalid = errors.New("title and url are required")
var ErrMalformedID = errors.New("malformatted id")
var ErrNotOwner = errors.New("only the creator can delete this blog")
var ErrTokenMissing = errors.New("token missing or invalid")

// Blog is a single blog-post record.
//
// UserID references the owning user. Legacy documents created before
// authentication was introduced have no owner; new blogs always get one.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogOwner is the resolved owner view embedded in API responses.
type BlogOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// BlogWithOwner pairs a blog with its resolved owner, if any.
type BlogWithOwner struct {
	Blog
	Owner *BlogOwner `json:"user,omitempty"`
}
