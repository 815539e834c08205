package services

import (
	"errors"
	"testing"
	"time"
)

type authStubStore struct {
	users    map[string]*User
	profiles map[string]*Profile
}

func newAuthStubStore() *authStubStore {
	return &authStubStore{users: map[string]*User{}, profiles: map[string]*Profile{}}
}

func (s *authStubStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (s *authStubStore) AddUser(u *User) error {
	if _, ok := s.users[u.Email]; ok {
		return errors.New("duplicate user")
	}
	copy := *u
	s.users[u.Email] = &copy
	return nil
}

func (s *authStubStore) AddProfile(p *Profile) error {
	copy := *p
	s.profiles[p.UserID] = &copy
	return nil
}

func testSigner(uid, email string, ttl time.Duration) (string, error) {
	return "token:" + uid + ":" + email, nil
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, testSigner)
	svc.now = func() time.Time { return time.Unix(0, 0) }
	svc.idGen = func(prefix string, n int) string { return prefix + "1234567" }

	res, err := svc.Register(RegisterInput{
		Email:     "lea@example.com",
		Password:  "Secret123",
		FirstName: "Léa",
		Filiere:   "Terminale STMG",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.UserID != "u1234567" {
		t.Fatalf("user id = %q", res.UserID)
	}
	if res.Token != "token:u1234567:lea@example.com" {
		t.Fatalf("unexpected token %q", res.Token)
	}

	p := store.profiles["u1234567"]
	if p == nil {
		t.Fatalf("registration must create the profile")
	}
	if p.FirstName != "Léa" || p.Filiere != "Terminale STMG" {
		t.Fatalf("profile = %+v", p)
	}
	if p.LearningStyle != "" || p.Preferences != nil {
		t.Fatalf("new profiles start without a learning style, got %+v", p)
	}

	if _, err = svc.Register(RegisterInput{Email: "lea@example.com", Password: "x", Filiere: "f"}); err == nil {
		t.Fatalf("expected conflict for duplicate email")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	login, err := svc.Login("lea@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.UserID != "u1234567" {
		t.Fatalf("login user id = %q", login.UserID)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	store := newAuthStubStore()
	svc := NewAuthService(store, testSigner)

	if _, err := svc.Register(RegisterInput{Email: "a@b.fr", Password: "Secret123", Filiere: "f"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	for _, c := range []struct{ email, pass string }{
		{"a@b.fr", "wrong"},
		{"nobody@b.fr", "Secret123"},
	} {
		_, err := svc.Login(c.email, c.pass)
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
			t.Fatalf("Login(%q, %q): expected unauthorized, got %v", c.email, c.pass, err)
		}
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := NewAuthService(newAuthStubStore(), testSigner)
	cases := []RegisterInput{
		{Password: "x", Filiere: "f"},
		{Email: "a@b.fr", Filiere: "f"},
		{Email: "a@b.fr", Password: "x"},
	}
	for i, in := range cases {
		_, err := svc.Register(in)
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("case %d: expected invalid error, got %v", i, err)
		}
	}
}
