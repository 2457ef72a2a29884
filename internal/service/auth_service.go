package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/andrewkatson/positiveonly/internal/domain"
	"github.com/andrewkatson/positiveonly/internal/repository"
	"github.com/andrewkatson/positiveonly/pkg/validator"
)

var (
	ErrUserExists        = &domain.Error{Kind: domain.KindConflict, Message: "User already exists"}
	ErrInvalidCreds      = &domain.Error{Kind: domain.KindAuth, Message: "No user exists with that information or password incorrect"}
	ErrUnknownSeries     = &domain.Error{Kind: domain.KindAuth, Message: "Series identifier does not exist"}
	ErrCookieMismatch    = &domain.Error{Kind: domain.KindAuth, Message: "Login cookie token does not match"}
	ErrInvalidSession    = &domain.Error{Kind: domain.KindAuth, Message: "Invalid session"}
	ErrNoResetTarget     = &domain.Error{Kind: domain.KindNotFound, Message: "No user found with that username or email"}
	ErrResetCodeMismatch = &domain.Error{Kind: domain.KindAuth, Message: "That reset code does not match"}
	ErrNoUserForReset    = &domain.Error{Kind: domain.KindNotFound, Message: "No user with that username or email"}
	ErrBadDateOfBirth    = &domain.Error{Kind: domain.KindValidation, Message: "Invalid date format, expected yyyy-MM-dd"}
)

const adultAge = 18

type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cookies  repository.CookieRepository
	posts    repository.PostRepository
	threads  repository.ThreadRepository

	revokeSeriesOnMismatch bool
	resetCode              func() int
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	cookies repository.CookieRepository,
	posts repository.PostRepository,
	threads repository.ThreadRepository,
	revokeSeriesOnMismatch bool,
) *AuthService {
	return &AuthService{
		users:                  users,
		sessions:               sessions,
		cookies:                cookies,
		posts:                  posts,
		threads:                threads,
		revokeSeriesOnMismatch: revokeSeriesOnMismatch,
		resetCode:              randomResetCode,
	}
}

// SetResetCodeGenerator replaces the reset-code source. Tests inject a
// static code; the default is a random six-digit number.
func (s *AuthService) SetResetCodeGenerator(gen func() int) {
	s.resetCode = gen
}

type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
	IP         string `json:"ip"`
}

type LoginInput struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
	RememberMe      bool   `json:"remember_me"`
	IP              string `json:"ip"`
}

type AuthResponse struct {
	SessionToken string  `json:"token"`
	SeriesID     *string `json:"series_identifier,omitempty"`
	CookieToken  *string `json:"login_cookie_token,omitempty"`
}

type RefreshResponse struct {
	CookieToken  string `json:"login_cookie_token"`
	SessionToken string `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if errs := validator.ValidateRegister(input.Username, input.Email, input.Password, input.IP); errs.HasErrors() {
		return nil, validationError(errs)
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	existing, err = s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		ResetCode:    domain.ResetCodeUnset,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issueCredentials(ctx, user.ID, input.RememberMe, input.IP)
}

// Login authenticates by username or email. A fresh login never invalidates
// the user's other sessions: multiple devices stay signed in.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	if errs := validator.ValidateLogin(input.UsernameOrEmail, input.Password, input.IP); errs.HasErrors() {
		return nil, validationError(errs)
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, input.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	if user == nil || !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	return s.issueCredentials(ctx, user.ID, input.RememberMe, input.IP)
}

// LoginWithRememberMe redeems a remember-me credential: the cookie token is
// rotated under the stable series identifier and a brand-new session is
// minted. A stale token fails, and optionally revokes the whole series.
func (s *AuthService) LoginWithRememberMe(ctx context.Context, seriesID, cookieToken, ip string) (*RefreshResponse, error) {
	if errs := validator.ValidateIP(ip); errs.HasErrors() {
		return nil, validationError(errs)
	}

	series, err := uuid.Parse(seriesID)
	if err != nil {
		return nil, ErrUnknownSeries
	}

	cookie, err := s.cookies.GetBySeries(ctx, series)
	if err != nil {
		return nil, err
	}
	if cookie == nil {
		return nil, ErrUnknownSeries
	}

	if cookie.Token != cookieToken {
		if s.revokeSeriesOnMismatch {
			if err := s.cookies.DeleteBySeries(ctx, series); err != nil {
				return nil, err
			}
		}
		return nil, ErrCookieMismatch
	}

	newCookieToken := newToken()
	if err := s.cookies.RotateToken(ctx, series, newCookieToken); err != nil {
		return nil, fmt.Errorf("rotating cookie token: %w", err)
	}

	session := &domain.Session{
		Token:     newToken(),
		UserID:    cookie.UserID,
		IP:        ip,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &RefreshResponse{CookieToken: newCookieToken, SessionToken: session.Token}, nil
}

// Logout deletes exactly the session matching the token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	removed, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return err
	}
	if !removed {
		return ErrInvalidSession
	}
	return nil
}

// DeleteUser removes the caller's account: every post (with its comment
// threads), every session, every login cookie, then the user row. Comments
// and likes the user left on other people's content stay behind as orphans;
// full referential cleanup is deliberately not done.
func (s *AuthService) DeleteUser(ctx context.Context, token string) error {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrInvalidSession
	}

	removedPosts, err := s.posts.DeleteByAuthor(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if err := s.threads.DeleteByPosts(ctx, removedPosts); err != nil {
		return err
	}
	if err := s.sessions.DeleteByUser(ctx, sess.UserID); err != nil {
		return err
	}
	if err := s.cookies.DeleteByUser(ctx, sess.UserID); err != nil {
		return err
	}
	return s.users.Delete(ctx, sess.UserID)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	if errs := validator.ValidateUsernameOrEmail(usernameOrEmail); errs.HasErrors() {
		return validationError(errs)
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoResetTarget
	}

	return s.users.SetResetCode(ctx, user.ID, s.resetCode())
}

// VerifyPasswordReset consumes the reset code: it succeeds at most once per
// issued code.
func (s *AuthService) VerifyPasswordReset(ctx context.Context, usernameOrEmail string, code int) error {
	user, err := s.users.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return err
	}
	if user == nil || user.ResetCode == domain.ResetCodeUnset || user.ResetCode != code {
		return ErrResetCodeMismatch
	}

	return s.users.SetResetCode(ctx, user.ID, domain.ResetCodeUnset)
}

// ResetPassword overwrites the credential for the user matching both the
// username and the email exactly.
func (s *AuthService) ResetPassword(ctx context.Context, username, email, password string) error {
	if errs := validator.ValidatePassword(password); errs.HasErrors() {
		return validationError(errs)
	}

	user, err := s.users.GetByUsernameAndEmail(ctx, username, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoUserForReset
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.users.SetPassword(ctx, user.ID, hash)
}

// VerifyIdentity records the outcome of an identity check. Verification
// always succeeds on a well-formed date; the computed age only gates the
// adult flag, never the verification itself.
func (s *AuthService) VerifyIdentity(ctx context.Context, token, dateOfBirth string) error {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return err
	}

	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return ErrBadDateOfBirth
	}

	age := yearsBetween(dob, time.Now())
	return s.users.SetIdentity(ctx, user.ID, true, age >= adultAge)
}

func (s *AuthService) issueCredentials(ctx context.Context, userID uuid.UUID, rememberMe bool, ip string) (*AuthResponse, error) {
	session := &domain.Session{
		Token:     newToken(),
		UserID:    userID,
		IP:        ip,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	resp := &AuthResponse{SessionToken: session.Token}

	if rememberMe {
		cookie := &domain.LoginCookie{
			SeriesID: uuid.New(),
			Token:    newToken(),
			UserID:   userID,
		}
		if err := s.cookies.Create(ctx, cookie); err != nil {
			return nil, fmt.Errorf("creating login cookie: %w", err)
		}
		seriesID := cookie.SeriesID.String()
		resp.SeriesID = &seriesID
		resp.CookieToken = &cookie.Token
	}

	return resp, nil
}

// yearsBetween counts whole calendar years from one date to another,
// accounting for whether the anniversary has passed yet.
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

func randomResetCode() int {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; there is no useful recovery here.
		panic(err)
	}
	return int(n.Int64()) + 100000
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
