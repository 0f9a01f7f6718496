package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment document stored in MongoDB. Replies are
// comments with IsReply set and a Parent reference; the parent keeps the
// reverse reference in Children.
type Comment struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	BlogID primitive.ObjectID `json:"blog_id" bson:"blog_id"`
	// BlogAuthor is the user id of the blog's author. The historical schema
	// declared it as a blog reference but it has always carried a user id;
	// the field name is kept for wire compatibility.
	BlogAuthor  primitive.ObjectID   `json:"blog_author" bson:"blog_author"`
	Comment     string               `json:"comment" bson:"comment"`
	Children    []primitive.ObjectID `json:"children" bson:"children"`
	CommentedBy primitive.ObjectID   `json:"commented_by" bson:"commented_by"`
	IsReply     bool                 `json:"isReply" bson:"isReply"`
	Parent      primitive.ObjectID   `json:"parent,omitempty" bson:"parent,omitempty"`
	CommentedAt time.Time            `json:"commentedAt" bson:"commentedAt"`
}

// CommentView is a comment with its author joined in, the shape returned by
// the comment listing endpoints.
type CommentView struct {
	Comment
	CommentedBy UserPreview `json:"commented_by"`
}

// AddCommentRequest defines the request body for posting a comment or reply.
type AddCommentRequest struct {
	ID             string `json:"_id" validate:"required"` // blog document id
	Comment        string `json:"comment"`
	ReplyingTo     string `json:"replying_to"`                     // parent comment id, set for replies
	BlogAuthor     string `json:"blog_author" validate:"required"` // user id of the blog author
	NotificationID string `json:"notification_id"`                 // set when replying from the notification panel
}

// AddCommentResponse is the payload returned after a successful insert.
type AddCommentResponse struct {
	Comment     string               `json:"comment"`
	CommentedAt time.Time            `json:"commentedAt"`
	ID          primitive.ObjectID   `json:"_id"`
	UserID      string               `json:"user_id"`
	Children    []primitive.ObjectID `json:"children"`
}

// GetBlogCommentsRequest pages through a blog's top-level comments.
type GetBlogCommentsRequest struct {
	BlogID string `json:"blog_id" validate:"required"`
	Skip   int64  `json:"skip"`
}

// GetRepliesRequest pages through one comment's replies.
type GetRepliesRequest struct {
	ID   string `json:"_id" validate:"required"`
	Skip int64  `json:"skip"`
}

// DeleteCommentRequest defines the request body for comment deletion.
type DeleteCommentRequest struct {
	ID string `json:"_id" validate:"required"`
}
