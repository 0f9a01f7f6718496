package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/arifdn/inkpot/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/search-users", h.SearchUsers)
	e.POST("/get-profile", h.GetProfile)
	e.POST("/change-password", h.ChangePassword, requireAuth)
	e.POST("/update-profile-img", h.UpdateProfileImg, requireAuth)
	e.POST("/update-profile", h.UpdateProfile, requireAuth)
}

// SearchUsers finds users by username, case-insensitive
func (h *UserHandler) SearchUsers(c echo.Context) error {
	var req models.SearchUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	users, err := h.userRepository.SearchUsers(c.Request().Context(), req.Query, 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GetProfile returns a user's public profile by username
func (h *UserHandler) GetProfile(c echo.Context) error {
	var req models.GetProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword verifies the current password and stores a new hash
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if !validators.ValidPassword(req.CurrentPassword) || !validators.ValidPassword(req.NewPassword) {
		return echo.NewHTTPError(http.StatusForbidden,
			"Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
	}

	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "User not found")
	}

	if user.GoogleAuth {
		return echo.NewHTTPError(http.StatusForbidden,
			"You can't change account's password because you logged in through google")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Incorrect current password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	if err := h.userRepository.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "Password Changed"})
}

// UpdateProfileImg stores a new profile image URL
func (h *UserHandler) UpdateProfileImg(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileImgRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.UpdateProfileImg(c.Request().Context(), userID, req.URL); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"profile_img": req.URL})
}

// social link hosts checked on profile update; "website" may point anywhere
var socialHosts = map[string]string{
	"youtube":   "youtube.com",
	"instagram": "instagram.com",
	"facebook":  "facebook.com",
	"twitter":   "twitter.com",
	"github":    "github.com",
}

// UpdateProfile stores username, bio and social links
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if len(req.Username) < 3 {
		return echo.NewHTTPError(http.StatusForbidden, "Username should be at least 3 letters long")
	}
	if len(req.Bio) > 150 {
		return echo.NewHTTPError(http.StatusForbidden, "Bio should not be more than 150 characters")
	}

	links := map[string]string{
		"youtube":   req.SocialLinks.Youtube,
		"instagram": req.SocialLinks.Instagram,
		"facebook":  req.SocialLinks.Facebook,
		"twitter":   req.SocialLinks.Twitter,
		"github":    req.SocialLinks.Github,
		"website":   req.SocialLinks.Website,
	}
	for site, link := range links {
		if link == "" {
			continue
		}
		parsed, err := url.Parse(link)
		if err != nil || parsed.Hostname() == "" {
			return echo.NewHTTPError(http.StatusForbidden, "You must provide full social links with http(s) included")
		}
		if host, ok := socialHosts[site]; ok && !strings.Contains(parsed.Hostname(), host) {
			return echo.NewHTTPError(http.StatusForbidden, site+" link is invalid. You must enter a full link")
		}
	}

	ctx := c.Request().Context()

	// reject usernames already taken by someone else
	if existing, err := h.userRepository.GetUserByUsername(ctx, req.Username); err == nil && existing.ID != userID {
		return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
	}

	if err := h.userRepository.UpdateProfile(ctx, userID, req.Username, req.Bio, req.SocialLinks); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"username": req.Username})
}
