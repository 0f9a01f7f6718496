package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity holds the denormalized counters on a blog. They are best-effort
// tallies updated alongside comment/like operations, not derived aggregates.
type Activity struct {
	TotalLikes          int64 `json:"total_likes" bson:"total_likes"`
	TotalComments       int64 `json:"total_comments" bson:"total_comments"`
	TotalReads          int64 `json:"total_reads" bson:"total_reads"`
	TotalParentComments int64 `json:"total_parent_comments" bson:"total_parent_comments"`
}

// BlogContent is the opaque editor block payload. Blocks are stored as-is.
type BlogContent struct {
	Blocks []map[string]interface{} `json:"blocks" bson:"blocks"`
}

// Blog represents a blog document stored in MongoDB.
type Blog struct {
	ID          primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	BlogID      string               `json:"blog_id" bson:"blog_id"` // unique slug + random suffix
	Title       string               `json:"title" bson:"title"`
	Banner      string               `json:"banner" bson:"banner"`
	Des         string               `json:"des" bson:"des"`
	Content     []BlogContent        `json:"content" bson:"content"`
	Tags        []string             `json:"tags" bson:"tags"`
	Author      primitive.ObjectID   `json:"author" bson:"author"`
	Activity    Activity             `json:"activity" bson:"activity"`
	Comments    []primitive.ObjectID `json:"comments" bson:"comments"`
	Draft       bool                 `json:"draft" bson:"draft"`
	PublishedAt time.Time            `json:"publishedAt" bson:"publishedAt"`
}

// BlogView is a blog with its author joined in for read responses.
type BlogView struct {
	Blog
	Author UserPreview `json:"author"`
}

// CreateBlogRequest defines the request body for creating or updating a blog.
// Field-level rules depend on the draft flag, so they are checked in the
// handler rather than with tags.
type CreateBlogRequest struct {
	Title   string      `json:"title"`
	Banner  string      `json:"banner"`
	Des     string      `json:"des"`
	Content BlogContent `json:"content"`
	Tags    []string    `json:"tags"`
	Draft   bool        `json:"draft"`
	ID      string      `json:"id"` // existing blog_id when editing
}

// PageRequest carries page-number pagination.
type PageRequest struct {
	Page int64 `json:"page"`
}

// SearchBlogsRequest defines the request body for blog search. Exactly one of
// Tag, Query or Author is expected.
type SearchBlogsRequest struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int64  `json:"page"`
	Limit         int64  `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

// GetBlogRequest defines the request body for a single blog read.
type GetBlogRequest struct {
	BlogID string `json:"blog_id" validate:"required"`
	Draft  bool   `json:"draft"`
	Mode   string `json:"mode"` // "edit" suppresses the read count increment
}

// LikeBlogRequest defines the request body for the like toggle.
type LikeBlogRequest struct {
	ID string `json:"_id" validate:"required"`
}

// UserWrittenBlogsRequest defines the request body for the author dashboard
// listing. DeletedDocCount compensates the skip after client-side deletes.
type UserWrittenBlogsRequest struct {
	Page            int64  `json:"page"`
	Draft           bool   `json:"draft"`
	Query           string `json:"query"`
	DeletedDocCount int64  `json:"deletedDocCount"`
}

// UserWrittenBlogsCountRequest defines the matching count request.
type UserWrittenBlogsCountRequest struct {
	Draft bool   `json:"draft"`
	Query string `json:"query"`
}

// DeleteBlogRequest defines the request body for blog deletion.
type DeleteBlogRequest struct {
	BlogID string `json:"blog_id" validate:"required"`
}
