package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reelworthy/reelworthy-core/internal/comments"
	"github.com/reelworthy/reelworthy-core/internal/config"
	"github.com/reelworthy/reelworthy-core/internal/mail"
	"github.com/reelworthy/reelworthy-core/internal/ratings"
	"github.com/reelworthy/reelworthy-core/internal/testdb"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

type authEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *TokenService
}

func newAuthEnv(t *testing.T) *authEnv {
	gin.SetMode(gin.TestMode)

	db := testdb.New(t, &users.User{}, &comments.Comment{}, &comments.CommentLike{}, &ratings.Rating{})
	tokens := testTokenService(time.Hour)
	mailer := mail.NewMailer(config.Config{}) // no SMTP user, sends are dropped
	h := NewHandler(db, tokens, mailer)

	r := gin.New()
	grp := r.Group("/api/auth")
	grp.POST("/register", h.RegisterHandler)
	grp.POST("/login", h.LoginHandler)
	grp.GET("/verify-email/:token", h.VerifyEmailHandler)
	grp.POST("/forgot-password", h.ForgotPasswordHandler)
	grp.POST("/reset-password/:token", h.ResetPasswordHandler)
	grp.GET("/me", RequireAuth(tokens), h.MeHandler)
	grp.PUT("/profile", RequireAuth(tokens), h.UpdateProfileHandler)
	grp.PUT("/change-password", RequireAuth(tokens), h.ChangePasswordHandler)
	grp.DELETE("/me", RequireAuth(tokens), h.DeleteAccountHandler)

	return &authEnv{router: r, db: db, tokens: tokens}
}

func (e *authEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *authEnv) register(t *testing.T, username, email, password string) (token string) {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + email + `","password":"` + password +
		`","firstName":"Test","lastName":"User"}`
	w := e.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(http.MethodPost, "/api/auth/register", "",
		`{"username":"alice2","email":"alice@example.com","password":"secret1","firstName":"A","lastName":"B"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	w = env.do(http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"new@example.com","password":"secret1","firstName":"A","lastName":"B"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestRegister_Validation(t *testing.T) {
	env := newAuthEnv(t)

	w := env.do(http.MethodPost, "/api/auth/register", "",
		`{"username":"ab","email":"not-an-email","password":"123","firstName":"","lastName":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	w = env.do(http.MethodPost, "/api/auth/login", "",
		`{"email":"ALICE@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
}

func TestMeAndProfileUpdate(t *testing.T) {
	env := newAuthEnv(t)
	token := env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "PasswordHash")

	w = env.do(http.MethodPut, "/api/auth/profile", token,
		`{"firstName":"Alicia","favoriteGenres":["Horror","Drama"]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Alicia"`)
	assert.Contains(t, w.Body.String(), `"Horror"`)
}

func TestEmailVerificationFlow(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	var u users.User
	require.NoError(t, env.db.First(&u, "username = ?", "alice").Error)
	require.NotNil(t, u.EmailVerificationToken)

	w := env.do(http.MethodGet, "/api/auth/verify-email/"+*u.EmailVerificationToken, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.First(&u, u.ID).Error)
	assert.True(t, u.IsEmailVerified)
	assert.Nil(t, u.EmailVerificationToken)

	w = env.do(http.MethodGet, "/api/auth/verify-email/bogus", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(http.MethodPost, "/api/auth/forgot-password", "", `{"email":"missing@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPost, "/api/auth/forgot-password", "", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var u users.User
	require.NoError(t, env.db.First(&u, "username = ?", "alice").Error)
	require.NotNil(t, u.ResetPasswordToken)

	w = env.do(http.MethodPost, "/api/auth/reset-password/"+*u.ResetPasswordToken, "", `{"password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/auth/reset-password/"+*u.ResetPasswordToken, "", `{"password":"brand-new"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"brand-new"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword(t *testing.T) {
	env := newAuthEnv(t)
	token := env.register(t, "alice", "alice@example.com", "secret1")

	w := env.do(http.MethodPut, "/api/auth/change-password", token,
		`{"currentPassword":"wrong","newPassword":"next-secret"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Current password is incorrect")

	w = env.do(http.MethodPut, "/api/auth/change-password", token,
		`{"currentPassword":"secret1","newPassword":"next-secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"next-secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAccount_CascadesContent(t *testing.T) {
	env := newAuthEnv(t)
	token := env.register(t, "alice", "alice@example.com", "secret1")

	var u users.User
	require.NoError(t, env.db.First(&u, "username = ?", "alice").Error)

	_, err := comments.Create(env.db, u.ID, "42", "soon gone")
	require.NoError(t, err)
	_, err = ratings.Upsert(env.db, u.ID, "42", 4, "")
	require.NoError(t, err)

	w := env.do(http.MethodDelete, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, env.db.Model(&users.User{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
	require.NoError(t, env.db.Model(&comments.Comment{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
	require.NoError(t, env.db.Model(&ratings.Rating{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}
