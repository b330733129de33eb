package identity

import (
	"errors"

	"elevatia-backend/shared/database/models/auth"
	utils "elevatia-backend/shared/utils/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrAccountNotFound = errors.New("account not found")
)

// Subject is a verified identity.
type Subject struct {
	ID    uuid.UUID
	Email string
}

// Gateway is the capability the portal requires from the identity provider:
// verify a bearer token and look up an account by email. Everything else
// about authentication (token issuance, sessions) lives behind it.
type Gateway interface {
	VerifyToken(token string) (*Subject, error)
	FindAccountByEmail(email string) (*auth.Account, error)
}

type jwtGateway struct {
	db *gorm.DB
}

// NewGateway returns a Gateway backed by HS256 tokens and the accounts table.
func NewGateway(db *gorm.DB) Gateway {
	return &jwtGateway{db: db}
}

func (g *jwtGateway) VerifyToken(token string) (*Subject, error) {
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	subjectID, err := uuid.Parse(claims.SubjectID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Subject{ID: subjectID, Email: claims.Email}, nil
}

func (g *jwtGateway) FindAccountByEmail(email string) (*auth.Account, error) {
	var account auth.Account
	if err := g.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
