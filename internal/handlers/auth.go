package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/arifdn/inkpot/backend/internal/models"
	"github.com/arifdn/inkpot/backend/internal/repositories"
	"github.com/arifdn/inkpot/backend/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/signup", h.Signup)
	e.POST("/signin", h.Signin)
	e.POST("/google-auth", h.GoogleAuth)
}

// Signup handles email/password registration
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if len(req.Fullname) < 3 {
		return echo.NewHTTPError(http.StatusForbidden, "Fullname must be at least 3 letters long")
	}
	if len(req.Email) == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "Enter email")
	}
	if !validators.EmailRegex.MatchString(req.Email) {
		return echo.NewHTTPError(http.StatusForbidden, "Email is incorrect")
	}
	if !validators.ValidPassword(req.Password) {
		return echo.NewHTTPError(http.StatusForbidden,
			"Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
	}

	ctx := c.Request().Context()

	if _, err := h.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	username, err := h.generateUsername(c, req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{
		PersonalInfo: models.PersonalInfo{
			Fullname: req.Fullname,
			Email:    req.Email,
			Password: string(hashed),
			Username: username,
		},
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.authResponse(user))
}

// Signin handles email/password login
func (h *AuthHandler) Signin(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusForbidden, "Email not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if user.GoogleAuth {
		return echo.NewHTTPError(http.StatusForbidden,
			"Account was created with Google. Try logging in with Google.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Incorrect Password")
	}

	return c.JSON(http.StatusOK, h.authResponse(user))
}

// GoogleAuth verifies a Firebase ID token and signs the user in, creating the
// account on first login.
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req models.GoogleAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.AccessToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError,
			"Failed to authenticate you with Google. Try with some other Google account")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	// request a higher resolution avatar
	picture = strings.Replace(picture, "s96-c", "s384-c", 1)

	user, err := h.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		username, err := h.generateUsername(c, email)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user = &models.User{
			PersonalInfo: models.PersonalInfo{
				Fullname:   name,
				Email:      email,
				Username:   username,
				ProfileImg: picture,
			},
			GoogleAuth: true,
		}
		if err := h.userRepository.CreateUser(ctx, user); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else if !user.GoogleAuth {
		// only accounts created through Google may sign in with it
		return echo.NewHTTPError(http.StatusForbidden,
			"This email was signed up without google. Please login with password to access the account")
	}

	return c.JSON(http.StatusOK, h.authResponse(user))
}

// generateUsername derives a username from the email prefix, suffixed when taken
func (h *AuthHandler) generateUsername(c echo.Context, email string) (string, error) {
	username := strings.Split(email, "@")[0]
	taken, err := h.userRepository.UsernameExists(c.Request().Context(), username)
	if err != nil {
		return "", err
	}
	if taken {
		username += uuid.NewString()[:5]
	}
	return username, nil
}

func (h *AuthHandler) authResponse(user *models.User) models.AuthResponse {
	token, _ := h.generateJWT(user)
	return models.AuthResponse{
		AccessToken: token,
		ProfileImg:  user.PersonalInfo.ProfileImg,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
	}
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
