package auth

import (
	"errors"
	"log"
	"time"

	"origo/internal/models"
	"origo/internal/repositories"
	"origo/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(email, phone, password, ip string) (*models.LoanOfficer, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(officerID uint) error
	ChangePassword(officerID uint, oldPassword, newPassword string) error
	GetTokenVersion(officerID uint) (int, error)
}

type service struct {
	officerRepo repositories.OfficerRepository
}

func NewService(officerRepo repositories.OfficerRepository) Service {
	if officerRepo == nil {
		panic("officer repository is required")
	}
	return &service{officerRepo: officerRepo}
}

func (s *service) Login(email, phone, password, ip string) (*models.LoanOfficer, string, string, error) {
	officer, err := s.getByIdentifier(email, phone)
	if err != nil {
		log.Printf("login failed: officer not found for %s%s", email, phone)
		return nil, "", "", ErrInvalidCredentials
	}

	if officer.Status != "active" {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for officer %d", officer.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.OfficerClaims{
		OfficerID:    officer.ID,
		Email:        officer.Email,
		Role:         officer.Role,
		TokenVersion: officer.TokenVersion,
		Permissions:  models.GetDefaultPermissions(officer.Role),
	})
	if err != nil {
		log.Printf("error generating tokens: %v", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	officer.LastLoginAt = time.Now()
	officer.LastLoginIP = ip
	if err := s.officerRepo.Update(officer); err != nil {
		log.Printf("failed to record last login for officer %d: %v", officer.ID, err)
	}

	return officer, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	officer, err := s.officerRepo.GetByID(claims.OfficerID)
	if err != nil {
		return "", "", errors.New("officer not found")
	}

	if officer.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.OfficerClaims{
		OfficerID:    officer.ID,
		Email:        officer.Email,
		Role:         officer.Role,
		TokenVersion: officer.TokenVersion,
		Permissions:  models.GetDefaultPermissions(officer.Role),
	})
}

func (s *service) Logout(officerID uint) error {
	return s.officerRepo.IncrementTokenVersion(officerID)
}

func (s *service) ChangePassword(officerID uint, oldPassword, newPassword string) error {
	officer, err := s.officerRepo.GetByID(officerID)
	if err != nil {
		return errors.New("failed to get officer")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(officer.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	officer.Password = string(hashedPassword)
	officer.TokenVersion++ // invalidate existing tokens

	if err := s.officerRepo.Update(officer); err != nil {
		return errors.New("failed to update password")
	}
	return nil
}

func (s *service) GetTokenVersion(officerID uint) (int, error) {
	officer, err := s.officerRepo.GetByID(officerID)
	if err != nil {
		return 0, err
	}
	return officer.TokenVersion, nil
}

func (s *service) getByIdentifier(email, phone string) (*models.LoanOfficer, error) {
	if email != "" {
		return s.officerRepo.GetByEmail(email)
	}
	if phone != "" {
		return s.officerRepo.GetByPhone(phone)
	}
	return nil, repositories.ErrOfficerNotFound
}
