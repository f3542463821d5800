package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createBlogRequest struct {
	Title  string `json:"title"  validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url"    validate:"required"`
	// Likes is a pointer so an omitted field can default to 0 server-side.
	Likes *int `json:"likes"`
}

// updateBlogRequest carries a partial update; only non-nil fields are applied.
type updateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type blogOwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type blogResponse struct {
	ID     string             `json:"id"`
	Title  string             `json:"title"`
	Author string             `json:"author"`
	URL    string             `json:"url"`
	Likes  int                `json:"likes"`
	User   *blogOwnerResponse `json:"user,omitempty"`
}
