package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	AddUser(u *User) error
	AddProfile(p *Profile) error
}

type TokenSigner func(uid, email string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	BirthDate   string `json:"birth_date"`
	Filiere     string `json:"filiere"`
	ParentEmail string `json:"parent_email"`
}

type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
		tokenTTL:  7 * 24 * time.Hour,
	}
}

// Register creates the account and its profile in one step. The profile
// starts with no learning style and nil preferences; the survey fills those
// in later.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	if strings.TrimSpace(in.Filiere) == "" {
		return nil, NewInvalidError("filiere required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	userID := s.idGen("u", 7)
	now := s.now()
	if err := s.store.AddUser(&User{ID: userID, Email: email, PassHash: hash, CreatedAt: now}); err != nil {
		return nil, err
	}
	profile := &Profile{
		UserID:      userID,
		FirstName:   strings.TrimSpace(in.FirstName),
		BirthDate:   strings.TrimSpace(in.BirthDate),
		Filiere:     strings.TrimSpace(in.Filiere),
		ParentEmail: strings.TrimSpace(in.ParentEmail),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.AddProfile(profile); err != nil {
		return nil, err
	}
	if s.signToken == nil {
		return nil, NewConfigError("token signer not configured")
	}
	token, err := s.signToken(userID, email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: userID}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewConfigError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID}, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
