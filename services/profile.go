package services

import (
	"errors"

	"quizdesk/models"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

var ErrUserNotFound = errors.New("user not found")

type UpdateProfileRequest struct {
	Email   string `json:"email" binding:"omitempty,email"`
	Gender  string `json:"gender" binding:"omitempty,oneof=UNSPECIFIED MALE FEMALE"`
	AboutMe string `json:"about_me" binding:"max=500"`
}

func (s *ProfileService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Examinee").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits the account fields and, for examinees, the attached
// profile, in one transaction.
func (s *ProfileService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Examinee").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.Email != "" {
			if err := tx.Model(&user).Update("email", req.Email).Error; err != nil {
				return err
			}
		}
		if user.Examinee != nil {
			updates := map[string]interface{}{"about_me": req.AboutMe}
			if req.Gender != "" {
				updates["gender"] = req.Gender
			}
			if err := tx.Model(user.Examinee).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Examinee").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
