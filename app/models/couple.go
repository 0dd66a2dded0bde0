package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

// Couple is a buyer account: the pair planning the wedding.
type Couple struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	PartnerOne   string         `gorm:"type:varchar(150);not null" json:"partner_one" validate:"required,min=2,max=150"`
	PartnerTwo   string         `gorm:"type:varchar(150)" json:"partner_two" validate:"max=150"`
	Email        string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Password     string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	WeddingDate  *time.Time     `gorm:"type:date;default:null" json:"wedding_date,omitempty"`
	Location     string         `gorm:"type:varchar(150)" json:"location" validate:"max=150"`
	Status       string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Couple) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

func CreateCouple(partnerOne, partnerTwo, email, password string) (*Couple, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	c := &Couple{
		UUID:       uuid.New().String(),
		PartnerOne: partnerOne,
		PartnerTwo: partnerTwo,
		Email:      email,
		Password:   pw,
		Status:     STATUS_ACTIVE,
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
