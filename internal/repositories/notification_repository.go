package repositories

import (
	"context"
	"time"

	"github.com/arifdn/inkpot/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	LikeExists(ctx context.Context, userID, blogID primitive.ObjectID) (bool, error)
	DeleteLike(ctx context.Context, userID, blogID primitive.ObjectID) error
	SetReply(ctx context.Context, notificationID, commentID primitive.ObjectID) error
	DeleteByComment(ctx context.Context, commentID primitive.ObjectID) error
	ClearReply(ctx context.Context, commentID primitive.ObjectID) error
	DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error
	HasUnseen(ctx context.Context, userID primitive.ObjectID) (bool, error)
	GetNotifications(ctx context.Context, userID primitive.ObjectID, filter string, skip, limit int64) ([]models.Notification, error)
	MarkSeen(ctx context.Context, ids []primitive.ObjectID) error
	CountNotifications(ctx context.Context, userID primitive.ObjectID, filter string) (int64, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func feedFilter(userID primitive.ObjectID, filter string) bson.M {
	query := bson.M{
		"notification_for": userID,
		"user":             bson.M{"$ne": userID}, // own actions don't notify
	}
	if filter != "" && filter != "all" {
		query["type"] = filter
	}
	return query
}

// CreateNotification inserts a new notification document
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// LikeExists reports whether a like notification exists for (user, blog).
// The like state of a blog is derived from this, not from a client flag.
func (r *MongoNotificationRepository) LikeExists(ctx context.Context, userID, blogID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user": userID,
		"blog": blogID,
		"type": models.NotificationLike,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLike removes the like notification for (user, blog)
func (r *MongoNotificationRepository) DeleteLike(ctx context.Context, userID, blogID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"user": userID,
		"blog": blogID,
		"type": models.NotificationLike,
	})
	return err
}

// SetReply attaches a reply comment to an existing notification
func (r *MongoNotificationRepository) SetReply(ctx context.Context, notificationID, commentID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": notificationID},
		bson.M{"$set": bson.M{"reply": commentID}})
	return err
}

// DeleteByComment removes the notification created for a comment
func (r *MongoNotificationRepository) DeleteByComment(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"comment": commentID})
	return err
}

// ClearReply unsets the reply field on notifications referencing a comment
func (r *MongoNotificationRepository) ClearReply(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"reply": commentID},
		bson.M{"$unset": bson.M{"reply": 1}})
	return err
}

// DeleteByBlog removes every notification referencing a blog
func (r *MongoNotificationRepository) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"blog": blogID})
	return err
}

// HasUnseen reports whether the user has unseen notifications
func (r *MongoNotificationRepository) HasUnseen(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	query := feedFilter(userID, "all")
	query["seen"] = false
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetNotifications retrieves a page of the user's feed, newest first
func (r *MongoNotificationRepository) GetNotifications(ctx context.Context, userID primitive.ObjectID, filter string, skip, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, feedFilter(userID, filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkSeen flags the given notifications as seen
func (r *MongoNotificationRepository) MarkSeen(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"seen": true}})
	return err
}

// CountNotifications counts the user's feed for a filter
func (r *MongoNotificationRepository) CountNotifications(ctx context.Context, userID primitive.ObjectID, filter string) (int64, error) {
	return r.collection.CountDocuments(ctx, feedFilter(userID, filter))
}
