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

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateProfileImg(ctx context.Context, id primitive.ObjectID, url string) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, username, bio string, links models.SocialLinks) error
	AttachBlog(ctx context.Context, userID, blogID primitive.ObjectID, postsDelta int64) error
	DetachBlog(ctx context.Context, userID, blogID primitive.ObjectID) error
	IncrementTotalReads(ctx context.Context, userID primitive.ObjectID, delta int64) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user document
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.JoinedAt = time.Now()
	if user.Blogs == nil {
		user.Blogs = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByID retrieves a user by document id
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"personal_info.email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"personal_info.username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is already taken
func (r *MongoUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"personal_info.username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SearchUsers finds users whose username matches the query, case-insensitive
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	filter := bson.M{"personal_info.username": primitive.Regex{Pattern: query, Options: "i"}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePassword replaces the stored password hash
func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"personal_info.password": hash}})
	return err
}

// UpdateProfileImg replaces the profile image URL
func (r *MongoUserRepository) UpdateProfileImg(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"personal_info.profile_img": url}})
	return err
}

// UpdateProfile replaces username, bio and social links
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, username, bio string, links models.SocialLinks) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"personal_info.username": username,
		"personal_info.bio":      bio,
		"social_links":           links,
	}})
	return err
}

// AttachBlog pushes a blog reference and bumps the post tally. postsDelta is
// zero for drafts.
func (r *MongoUserRepository) AttachBlog(ctx context.Context, userID, blogID primitive.ObjectID, postsDelta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"blogs": blogID},
		"$inc":  bson.M{"account_info.total_posts": postsDelta},
	})
	return err
}

// DetachBlog pulls a blog reference and decrements the post tally
func (r *MongoUserRepository) DetachBlog(ctx context.Context, userID, blogID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"blogs": blogID},
		"$inc":  bson.M{"account_info.total_posts": -1},
	})
	return err
}

// IncrementTotalReads bumps the author's read tally
func (r *MongoUserRepository) IncrementTotalReads(ctx context.Context, userID primitive.ObjectID, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"account_info.total_reads": delta}})
	return err
}
