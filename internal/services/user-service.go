package services

import (
	"errors"
	"strings"

	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/internal/helper"
	"github.com/portaleuropa/testimonial_service/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService interface {
	Login(username, password string) (string, error)
	IsAdmin(userID uint) (bool, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (u *userService) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	return u.auth.GenerateToken(int(user.ID), user.Username, user.IsAdmin)
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}
