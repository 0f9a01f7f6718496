package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/arifdn/inkpot/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gotest.tools/assert"
)

func newUserTestEnv(t *testing.T) (*UserHandler, *fakeUserRepo, *models.User) {
	t.Helper()
	users := newFakeUserRepo()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.DefaultCost)
	assert.NilError(t, err)
	user := &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Ada Lovelace", Email: "ada@example.com",
		Username: "ada", Password: string(hash),
	}}
	assert.NilError(t, users.CreateUser(context.Background(), user))

	return NewUserHandler(users), users, user
}

func TestGetProfile(t *testing.T) {
	handler, _, _ := newUserTestEnv(t)

	c, rec := newTestContext(http.MethodPost, "/get-profile", `{"username":"ada"}`)
	assert.NilError(t, handler.GetProfile(c))
	assert.Equal(t, rec.Code, http.StatusOK)

	var resp models.User
	decodeBody(t, rec, &resp)
	assert.Equal(t, resp.PersonalInfo.Fullname, "Ada Lovelace")
	// the password hash never leaves the server
	assert.Assert(t, !strings.Contains(rec.Body.String(), "password"))
}

func TestGetProfileUnknownUser(t *testing.T) {
	handler, _, _ := newUserTestEnv(t)

	c, _ := newTestContext(http.MethodPost, "/get-profile", `{"username":"ghost"}`)
	he := asHTTPError(t, handler.GetProfile(c))
	assert.Equal(t, he.Code, http.StatusNotFound)
}

func TestChangePassword(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	body := `{"currentPassword":"Passw0rd","newPassword":"N3wSecret"}`
	c, rec := newTestContext(http.MethodPost, "/change-password", body)
	c.Set("userID", user.ID.Hex())
	assert.NilError(t, handler.ChangePassword(c))
	assert.Equal(t, rec.Code, http.StatusOK)

	assert.NilError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.PersonalInfo.Password), []byte("N3wSecret")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	body := `{"currentPassword":"Wrong0ne","newPassword":"N3wSecret"}`
	c, _ := newTestContext(http.MethodPost, "/change-password", body)
	c.Set("userID", user.ID.Hex())

	he := asHTTPError(t, handler.ChangePassword(c))
	assert.Equal(t, he.Code, http.StatusForbidden)
	assert.Equal(t, he.Message, "Incorrect current password")
}

func TestChangePasswordGoogleAccount(t *testing.T) {
	handler, _, user := newUserTestEnv(t)
	user.GoogleAuth = true

	body := `{"currentPassword":"Passw0rd","newPassword":"N3wSecret"}`
	c, _ := newTestContext(http.MethodPost, "/change-password", body)
	c.Set("userID", user.ID.Hex())

	he := asHTTPError(t, handler.ChangePassword(c))
	assert.Equal(t, he.Code, http.StatusForbidden)
	assert.Equal(t, he.Message,
		"You can't change account's password because you logged in through google")
}

func TestUpdateProfile(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	body := `{
		"username": "countess",
		"bio": "first programmer",
		"social_links": {"github": "https://github.com/ada"}
	}`
	c, rec := newTestContext(http.MethodPost, "/update-profile", body)
	c.Set("userID", user.ID.Hex())
	assert.NilError(t, handler.UpdateProfile(c))
	assert.Equal(t, rec.Code, http.StatusOK)

	assert.Equal(t, user.PersonalInfo.Username, "countess")
	assert.Equal(t, user.PersonalInfo.Bio, "first programmer")
	assert.Equal(t, user.SocialLinks.Github, "https://github.com/ada")
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	handler, users, user := newUserTestEnv(t)

	other := &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Grace Hopper", Email: "grace@example.com", Username: "grace",
	}}
	assert.NilError(t, users.CreateUser(context.Background(), other))

	c, _ := newTestContext(http.MethodPost, "/update-profile", `{"username":"grace"}`)
	c.Set("userID", user.ID.Hex())

	he := asHTTPError(t, handler.UpdateProfile(c))
	assert.Equal(t, he.Code, http.StatusConflict)
	assert.Equal(t, he.Message, "Username is already taken")
}

func TestUpdateProfileKeepingOwnUsername(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	// re-submitting your own username is not a conflict
	c, rec := newTestContext(http.MethodPost, "/update-profile", `{"username":"ada","bio":"updated"}`)
	c.Set("userID", user.ID.Hex())
	assert.NilError(t, handler.UpdateProfile(c))
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, user.PersonalInfo.Bio, "updated")
}

func TestUpdateProfileSocialLinkValidation(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "wrong host",
			body:    `{"username":"ada","social_links":{"youtube":"https://vimeo.com/ada"}}`,
			message: "youtube link is invalid. You must enter a full link",
		},
		{
			name:    "missing scheme",
			body:    `{"username":"ada","social_links":{"github":"github.com/ada"}}`,
			message: "You must provide full social links with http(s) included",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/update-profile", tc.body)
			c.Set("userID", user.ID.Hex())

			he := asHTTPError(t, handler.UpdateProfile(c))
			assert.Equal(t, he.Code, http.StatusForbidden)
			assert.Equal(t, he.Message, tc.message)
		})
	}
}

func TestUpdateProfileImg(t *testing.T) {
	handler, _, user := newUserTestEnv(t)

	body := `{"url":"https://cdn.example.com/avatar.png"}`
	c, rec := newTestContext(http.MethodPost, "/update-profile-img", body)
	c.Set("userID", user.ID.Hex())
	assert.NilError(t, handler.UpdateProfileImg(c))
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, user.PersonalInfo.ProfileImg, "https://cdn.example.com/avatar.png")
}

func TestSearchUsers(t *testing.T) {
	handler, users, _ := newUserTestEnv(t)

	other := &models.User{PersonalInfo: models.PersonalInfo{
		Fullname: "Grace Hopper", Email: "grace@example.com", Username: "grace",
	}}
	assert.NilError(t, users.CreateUser(context.Background(), other))

	c, rec := newTestContext(http.MethodPost, "/search-users", `{"query":"gra"}`)
	assert.NilError(t, handler.SearchUsers(c))

	var resp struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, len(resp.Users), 1)
	assert.Equal(t, resp.Users[0].PersonalInfo.Username, "grace")
}
