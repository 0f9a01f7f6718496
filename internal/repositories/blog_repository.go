package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/arifdn/inkpot/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlogSearchFilter selects published blogs by exactly one of tag, title query
// or author. EliminateBlog excludes a blog_id from tag searches.
type BlogSearchFilter struct {
	Tag           string
	Query         string
	Author        primitive.ObjectID
	EliminateBlog string
}

// BlogUpdate carries the editable fields for an existing blog
type BlogUpdate struct {
	Title   string
	Banner  string
	Des     string
	Content []models.BlogContent
	Tags    []string
	Draft   bool
}

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	UpdateBlog(ctx context.Context, blogID string, update BlogUpdate) error
	GetByBlogID(ctx context.Context, blogID string) (*models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	GetLatest(ctx context.Context, skip, limit int64) ([]models.Blog, error)
	CountPublished(ctx context.Context) (int64, error)
	GetTrending(ctx context.Context, limit int64) ([]models.Blog, error)
	Search(ctx context.Context, filter BlogSearchFilter, skip, limit int64) ([]models.Blog, error)
	CountSearch(ctx context.Context, filter BlogSearchFilter) (int64, error)
	FindByAuthor(ctx context.Context, author primitive.ObjectID, draft bool, query string, skip, limit int64) ([]models.Blog, error)
	CountByAuthor(ctx context.Context, author primitive.ObjectID, draft bool, query string) (int64, error)
	IncrementReads(ctx context.Context, blogID string, delta int64) error
	IncrementLikes(ctx context.Context, id primitive.ObjectID, delta int64) error
	AttachComment(ctx context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error
	DetachComment(ctx context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error
	DeleteBlog(ctx context.Context, blogID string) (*models.Blog, error)
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection("blogs")}
}

func (f BlogSearchFilter) toBSON() bson.M {
	filter := bson.M{"draft": false}
	switch {
	case f.Tag != "":
		filter["tags"] = f.Tag
		if f.EliminateBlog != "" {
			filter["blog_id"] = bson.M{"$ne": f.EliminateBlog}
		}
	case f.Query != "":
		filter["title"] = primitive.Regex{Pattern: f.Query, Options: "i"}
	case !f.Author.IsZero():
		filter["author"] = f.Author
	}
	return filter
}

// CreateBlog inserts a new blog document
func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	blog.ID = primitive.NewObjectID()
	blog.PublishedAt = time.Now()
	if blog.Comments == nil {
		blog.Comments = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, blog)
	return err
}

// UpdateBlog replaces the editable fields of an existing blog
func (r *MongoBlogRepository) UpdateBlog(ctx context.Context, blogID string, update BlogUpdate) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"blog_id": blogID}, bson.M{"$set": bson.M{
		"title":   update.Title,
		"banner":  update.Banner,
		"des":     update.Des,
		"content": update.Content,
		"tags":    update.Tags,
		"draft":   update.Draft,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("blog not found")
	}
	return nil
}

// GetByBlogID retrieves a blog by its slug id
func (r *MongoBlogRepository) GetByBlogID(ctx context.Context, blogID string) (*models.Blog, error) {
	var blog models.Blog
	err := r.collection.FindOne(ctx, bson.M{"blog_id": blogID}).Decode(&blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetByID retrieves a blog by document id
func (r *MongoBlogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var blog models.Blog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *MongoBlogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err = cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetLatest retrieves published blogs, newest first
func (r *MongoBlogRepository) GetLatest(ctx context.Context, skip, limit int64) ([]models.Blog, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	return r.find(ctx, bson.M{"draft": false}, opts)
}

// CountPublished counts all published blogs
func (r *MongoBlogRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"draft": false})
}

// GetTrending retrieves published blogs ranked by reads, likes, recency
func (r *MongoBlogRepository) GetTrending(ctx context.Context, limit int64) ([]models.Blog, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.D{
		{Key: "activity.total_reads", Value: -1},
		{Key: "activity.total_likes", Value: -1},
		{Key: "publishedAt", Value: -1},
	})
	return r.find(ctx, bson.M{"draft": false}, opts)
}

// Search retrieves published blogs matching the filter, newest first
func (r *MongoBlogRepository) Search(ctx context.Context, filter BlogSearchFilter, skip, limit int64) ([]models.Blog, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	return r.find(ctx, filter.toBSON(), opts)
}

// CountSearch counts published blogs matching the filter. Only the listing
// excludes the currently open blog; the count covers it.
func (r *MongoBlogRepository) CountSearch(ctx context.Context, filter BlogSearchFilter) (int64, error) {
	filter.EliminateBlog = ""
	return r.collection.CountDocuments(ctx, filter.toBSON())
}

// FindByAuthor retrieves an author's blogs filtered by draft flag and title query
func (r *MongoBlogRepository) FindByAuthor(ctx context.Context, author primitive.ObjectID, draft bool, query string, skip, limit int64) ([]models.Blog, error) {
	filter := bson.M{
		"author": author,
		"draft":  draft,
		"title":  primitive.Regex{Pattern: query, Options: "i"},
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	return r.find(ctx, filter, opts)
}

// CountByAuthor counts an author's blogs filtered by draft flag and title query
func (r *MongoBlogRepository) CountByAuthor(ctx context.Context, author primitive.ObjectID, draft bool, query string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"author": author,
		"draft":  draft,
		"title":  primitive.Regex{Pattern: query, Options: "i"},
	})
}

// IncrementReads bumps the read tally of a blog by slug id
func (r *MongoBlogRepository) IncrementReads(ctx context.Context, blogID string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"blog_id": blogID},
		bson.M{"$inc": bson.M{"activity.total_reads": delta}})
	return err
}

// IncrementLikes bumps the like tally of a blog
func (r *MongoBlogRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"activity.total_likes": delta}})
	return err
}

// AttachComment pushes a comment reference and bumps the comment tallies.
// parentDelta is 1 for top-level comments, 0 for replies.
func (r *MongoBlogRepository) AttachComment(ctx context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": blogID}, bson.M{
		"$push": bson.M{"comments": commentID},
		"$inc": bson.M{
			"activity.total_comments":        1,
			"activity.total_parent_comments": parentDelta,
		},
	})
	return err
}

// DetachComment pulls a comment reference and decrements the comment tallies
func (r *MongoBlogRepository) DetachComment(ctx context.Context, blogID, commentID primitive.ObjectID, parentDelta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": blogID}, bson.M{
		"$pull": bson.M{"comments": commentID},
		"$inc": bson.M{
			"activity.total_comments":        -1,
			"activity.total_parent_comments": -parentDelta,
		},
	})
	return err
}

// DeleteBlog removes a blog by slug id and returns the deleted document
func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, blogID string) (*models.Blog, error) {
	var blog models.Blog
	err := r.collection.FindOneAndDelete(ctx, bson.M{"blog_id": blogID}).Decode(&blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
