package repositories

import (
	"errors"

	"origo/internal/models"

	"gorm.io/gorm"
)

var ErrOfficerNotFound = errors.New("officer not found")

// OfficerRepository is the data access interface for loan officers.
type OfficerRepository interface {
	Create(officer *models.LoanOfficer) error
	GetByID(id uint) (*models.LoanOfficer, error)
	GetByEmail(email string) (*models.LoanOfficer, error)
	GetByPhone(phone string) (*models.LoanOfficer, error)
	Update(officer *models.LoanOfficer) error
	IncrementTokenVersion(id uint) error
}

type officerRepository struct {
	db *gorm.DB
}

// NewOfficerRepository creates the GORM-backed officer repository.
func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{db: db}
}

func (r *officerRepository) Create(officer *models.LoanOfficer) error {
	return r.db.Create(officer).Error
}

func (r *officerRepository) GetByID(id uint) (*models.LoanOfficer, error) {
	var officer models.LoanOfficer
	if err := r.db.First(&officer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, err
	}
	return &officer, nil
}

func (r *officerRepository) GetByEmail(email string) (*models.LoanOfficer, error) {
	var officer models.LoanOfficer
	if err := r.db.Where("email = ?", email).First(&officer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, err
	}
	return &officer, nil
}

func (r *officerRepository) GetByPhone(phone string) (*models.LoanOfficer, error) {
	var officer models.LoanOfficer
	if err := r.db.Where("phone = ?", phone).First(&officer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, err
	}
	return &officer, nil
}

func (r *officerRepository) Update(officer *models.LoanOfficer) error {
	return r.db.Save(officer).Error
}

func (r *officerRepository) IncrementTokenVersion(id uint) error {
	return r.db.Model(&models.LoanOfficer{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}
