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

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetBlogComments(ctx context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	AddChild(ctx context.Context, parentID, childID primitive.ObjectID) (*models.Comment, error)
	RemoveChild(ctx context.Context, parentID, childID primitive.ObjectID) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteByBlogID(ctx context.Context, blogID primitive.ObjectID) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment inserts a new comment document
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CommentedAt = time.Now()
	if comment.Children == nil {
		comment.Children = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by document id
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetBlogComments retrieves a page of a blog's top-level comments, newest first
func (r *MongoCommentRepository) GetBlogComments(ctx context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	filter := bson.M{"blog_id": blogID, "isReply": false}
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "commentedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByIDs resolves a reference list (a parent's children) with its own
// skip/limit applied to the referenced set, newest first.
func (r *MongoCommentRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "commentedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddChild appends a reply reference to the parent's children and returns the
// parent, whose author becomes the notification recipient.
func (r *MongoCommentRepository) AddChild(ctx context.Context, parentID, childID primitive.ObjectID) (*models.Comment, error) {
	var parent models.Comment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": parentID},
		bson.M{"$push": bson.M{"children": childID}}).Decode(&parent)
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

// RemoveChild pulls a reply reference from the parent's children
func (r *MongoCommentRepository) RemoveChild(ctx context.Context, parentID, childID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": parentID},
		bson.M{"$pull": bson.M{"children": childID}})
	return err
}

// DeleteComment removes a comment and returns the deleted document so the
// caller can walk parent and children references.
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteByBlogID removes every comment of a blog
func (r *MongoCommentRepository) DeleteByBlogID(ctx context.Context, blogID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": blogID})
	return err
}
