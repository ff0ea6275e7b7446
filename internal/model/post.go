package model

import (
	"time"
)

type Post struct {
	ID         string    `json:"id" bson:"_id"`
	Text       string    `json:"text" bson:"text"`
	Images     []string  `json:"images" bson:"images"`
	AuthorID   string    `json:"author_id" bson:"authorId"`
	AuthorName string    `json:"author_name" bson:"authorName"`
	Tags       []string  `json:"tags" bson:"tags"`
	Comments   int       `json:"comments" bson:"comments"`
	Reshares   int       `json:"reshares" bson:"reshares"`
	Likes      int       `json:"likes" bson:"likes"`
	Views      int       `json:"views" bson:"views"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
}

type Comment struct {
	ID         string    `json:"id" bson:"_id"`
	PostID     string    `json:"post_id" bson:"postId"`
	AuthorID   string    `json:"author_id" bson:"authorId"`
	AuthorName string    `json:"author_name" bson:"authorName"`
	Text       string    `json:"text" bson:"text"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
}
