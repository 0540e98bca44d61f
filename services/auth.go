package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizdesk/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret []byte
}

// NewAuthService builds the auth service. The redis client may be nil, in
// which case logout revocation is disabled and tokens stay valid until
// expiry.
func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{db: db, redis: redisClient, jwtSecret: []byte(jwtSecret)}
}

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

func (s *AuthService) RegisterTeacher(username, email, password string) (*models.User, string, error) {
	return s.register(username, email, password, models.RoleTeacher)
}

// RegisterExaminee creates the account and its Examinee profile in one
// transaction; a failed profile insert rolls the account back too.
func (s *AuthService) RegisterExaminee(username, email, password string) (*models.User, string, error) {
	return s.register(username, email, password, models.RoleExaminee)
}

func (s *AuthService) register(username, email, password, role string) (*models.User, string, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == models.RoleExaminee {
			profile := models.Examinee{
				UserID: user.ID,
				Gender: models.GenderUnspecified,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken returns the user id and role carried by a valid,
// non-revoked token.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, revocationKey(tokenString)).Result()
		if err == nil && revoked > 0 {
			return 0, "", ErrInvalidToken
		}
	}

	return uint(userID), role, nil
}

// Logout revokes the token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Set(ctx, revocationKey(tokenString), "revoked", tokenTTL).Err()
}

func revocationKey(token string) string {
	return fmt.Sprintf("revoked:%s", token)
}

func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Examinee").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
