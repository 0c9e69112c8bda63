package auth

import (
	"context"
	"testing"
)

// fakeRepo implementa Repository en memoria para los tests del servicio.
type fakeRepo struct {
	users map[string]*User
	next  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := r.users[u.Username]; ok {
		return ErrUserAlreadyExists
	}
	r.users[u.Username] = u
	return nil
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *fakeRepo) NextUserID(_ context.Context) (int, error) {
	r.next++
	return importedUserIDFloor + r.next, nil
}

func newTestService() Service {
	return NewService(newFakeRepo(), NewJWTTokenManager("secreto-de-test"))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	userID, token, err := svc.Register(ctx, "Cinefilo", "contraseña123")
	if err != nil {
		t.Fatal(err)
	}
	if userID <= importedUserIDFloor {
		t.Fatalf("userID = %d, debe quedar sobre el piso de ids importados", userID)
	}
	if token == "" {
		t.Fatal("registro sin token")
	}

	// el username se normaliza: login con otra capitalización funciona
	loginID, loginToken, err := svc.Login(ctx, "cinefilo", "contraseña123")
	if err != nil {
		t.Fatal(err)
	}
	if loginID != userID || loginToken == "" {
		t.Fatalf("login: id=%d token=%q", loginID, loginToken)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "ana", "contraseña123"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Register(ctx, "ANA", "otra-clave-456"); err != ErrUserAlreadyExists {
		t.Fatalf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "bruno", "contraseña123"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login(ctx, "bruno", "incorrecta"); err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nadie", "contraseña123"); err != ErrInvalidCredentials {
		t.Fatalf("usuario inexistente: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewJWTTokenManager("secreto-de-test")

	token, err := tm.GenerateToken(1000042)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1000042 {
		t.Fatalf("user id del token = %d, want 1000042", got)
	}

	if _, err := tm.ValidateToken(token + "x"); err == nil {
		t.Fatal("token adulterado debe fallar")
	}
	otro := NewJWTTokenManager("otro-secreto")
	if _, err := otro.ValidateToken(token); err == nil {
		t.Fatal("token firmado con otro secreto debe fallar")
	}
}
