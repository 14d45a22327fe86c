package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID string) (*User, error)
	Update(user *User) error
	EmailByID(userID string) (string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(userID string) (*User, error) {
	var u User
	err := r.db.First(&u, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// EmailByID is the cheap lookup used when notifying event creators
func (r *repository) EmailByID(userID string) (string, error) {
	var u User
	err := r.db.Select("email").First(&u, "id = ?", userID).Error
	if err != nil {
		return "", err
	}
	return u.Email, nil
}
