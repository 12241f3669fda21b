package models

import "strings"

type Post struct {
	Id           int64
	Title        string
	Content      string
	UserId       int64
	Tags         []string
	CreatedAt    string
	UpdatedAt    string
	Comments     []Comment
	User         User
	CommentCount int
}

type Comment struct {
	Id        int64
	PostId    int64
	UserId    int64
	Content   string
	CreatedAt string
	User      User
}

// NewPost is the payload of POST /posts.
type NewPost struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ParseTags splits a comma separated list, dropping blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
