package handler

import "github.com/bloglist/bloglist-api/internal/core/domain"

func toBlogResponse(b domain.BlogWithOwner) blogResponse {
	resp := blogResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
	if b.Owner != nil {
		resp.User = &blogOwnerResponse{
			ID:       b.Owner.ID,
			Username: b.Owner.Username,
			Name:     b.Owner.Name,
		}
	}
	return resp
}

func toBlogResponses(blogs []domain.BlogWithOwner) []blogResponse {
	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b))
	}
	return out
}
