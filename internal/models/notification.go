package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types. A like notification is deleted on unlike, so one exists
// iff the user currently likes the blog.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification represents a notification document stored in MongoDB.
type Notification struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Type             string             `json:"type" bson:"type"`
	Blog             primitive.ObjectID `json:"blog" bson:"blog"`
	NotificationFor  primitive.ObjectID `json:"notification_for" bson:"notification_for"`
	User             primitive.ObjectID `json:"user" bson:"user"` // the actor
	Comment          primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty"`
	Reply            primitive.ObjectID `json:"reply,omitempty" bson:"reply,omitempty"`
	RepliedOnComment primitive.ObjectID `json:"replied_on_comment,omitempty" bson:"replied_on_comment,omitempty"`
	Seen             bool               `json:"seen" bson:"seen"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

// NotificationView is a notification with its actor joined in.
type NotificationView struct {
	Notification
	User UserPreview `json:"user"`
}

// GetNotificationsRequest pages through the recipient's feed. Filter is one of
// "all", "like", "comment", "reply".
type GetNotificationsRequest struct {
	Page            int64  `json:"page"`
	Filter          string `json:"filter"`
	DeletedDocCount int64  `json:"deletedDocCount"`
}

// NotificationsCountRequest defines the matching count request.
type NotificationsCountRequest struct {
	Filter string `json:"filter"`
}
