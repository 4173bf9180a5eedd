package model

import "time"

type Blog struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	WebsiteURL   string    `json:"websiteUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	IsMembership bool      `json:"isMembership"`
}

type BlogInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WebsiteURL  string `json:"websiteUrl"`
}

type Post struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"`
	BlogID           string    `json:"blogId"`
	BlogName         string    `json:"blogName,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type PostInput struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
}

type CommentatorInfo struct {
	UserID    string `json:"userId"`
	UserLogin string `json:"userLogin"`
}

type Comment struct {
	ID              string           `json:"id"`
	Content         string           `json:"content"`
	CommentatorInfo *CommentatorInfo `json:"commentatorInfo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// OwnedBy reports whether the comment was written by the given user id.
func (c Comment) OwnedBy(userID string) bool {
	return c.CommentatorInfo != nil && userID != "" && c.CommentatorInfo.UserID == userID
}

type CommentInput struct {
	Content string `json:"content"`
}
