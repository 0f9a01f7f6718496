package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalInfo holds the identity fields of a user account.
type PersonalInfo struct {
	Fullname   string `json:"fullname" bson:"fullname"`
	Email      string `json:"email" bson:"email"`
	Password   string `json:"-" bson:"password,omitempty"` // bcrypt hash, never serialized
	Username   string `json:"username" bson:"username"`
	Bio        string `json:"bio" bson:"bio"`
	ProfileImg string `json:"profile_img" bson:"profile_img"`
}

// SocialLinks holds optional profile links shown on the user's page.
type SocialLinks struct {
	Youtube   string `json:"youtube" bson:"youtube"`
	Instagram string `json:"instagram" bson:"instagram"`
	Facebook  string `json:"facebook" bson:"facebook"`
	Twitter   string `json:"twitter" bson:"twitter"`
	Github    string `json:"github" bson:"github"`
	Website   string `json:"website" bson:"website"`
}

// AccountInfo holds denormalized per-user tallies.
type AccountInfo struct {
	TotalPosts int64 `json:"total_posts" bson:"total_posts"`
	TotalReads int64 `json:"total_reads" bson:"total_reads"`
}

// User represents a user document stored in MongoDB.
type User struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	PersonalInfo PersonalInfo         `json:"personal_info" bson:"personal_info"`
	SocialLinks  SocialLinks          `json:"social_links" bson:"social_links"`
	AccountInfo  AccountInfo          `json:"account_info" bson:"account_info"`
	GoogleAuth   bool                 `json:"google_auth" bson:"google_auth"`
	Blogs        []primitive.ObjectID `json:"blogs" bson:"blogs"`
	JoinedAt     time.Time            `json:"joinedAt" bson:"joinedAt"`
}

// PersonalInfoPreview is the subset of personal info joined into comments,
// blogs and notifications.
type PersonalInfoPreview struct {
	Fullname   string `json:"fullname" bson:"fullname"`
	Username   string `json:"username" bson:"username"`
	ProfileImg string `json:"profile_img" bson:"profile_img"`
}

// UserPreview is the author shape embedded in enriched responses.
type UserPreview struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id"`
	PersonalInfo PersonalInfoPreview `json:"personal_info" bson:"personal_info"`
}

// ToPreview returns the joinable author subset of the user.
func (u *User) ToPreview() UserPreview {
	return UserPreview{
		ID: u.ID,
		PersonalInfo: PersonalInfoPreview{
			Fullname:   u.PersonalInfo.Fullname,
			Username:   u.PersonalInfo.Username,
			ProfileImg: u.PersonalInfo.ProfileImg,
		},
	}
}

// SignupRequest defines the request body for email/password registration.
type SignupRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest defines the request body for email/password login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest carries the Firebase ID token issued by the client.
type GoogleAuthRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// AuthResponse is the session payload returned by all three auth endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

// SearchUsersRequest defines the request body for username search.
type SearchUsersRequest struct {
	Query string `json:"query" validate:"required"`
}

// GetProfileRequest defines the request body for profile lookup.
type GetProfileRequest struct {
	Username string `json:"username" validate:"required"`
}

// ChangePasswordRequest defines the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// UpdateProfileImgRequest defines the request body for a profile image update.
type UpdateProfileImgRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// UpdateProfileRequest defines the request body for a profile update.
type UpdateProfileRequest struct {
	Username    string      `json:"username" validate:"required"`
	Bio         string      `json:"bio" validate:"max=150"`
	SocialLinks SocialLinks `json:"social_links"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
