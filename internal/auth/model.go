package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User representa un perfil en la base de datos. UserID es el id numérico
// que usa el dominio de ratings (el mismo espacio de ids que los CSV de
// MovieLens importados).
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       int           `bson:"userId" json:"userId"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password" json:"-"`
}

// Errores de dominio de auth.
var (
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// Repository define las operaciones necesarias contra la persistencia.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	// NextUserID entrega el siguiente id numérico de usuario, por encima
	// del rango ya ocupado por los usuarios importados del dataset.
	NextUserID(ctx context.Context) (int, error)
}

// Service define la lógica de negocio expuesta a los handlers.
type Service interface {
	Register(ctx context.Context, username, password string) (userID int, token string, err error)
	Login(ctx context.Context, username, password string) (userID int, token string, err error)
}

// TokenManager abstrae la generación y validación de tokens de sesión.
type TokenManager interface {
	GenerateToken(userID int) (string, error)
	ValidateToken(token string) (int, error)
}
