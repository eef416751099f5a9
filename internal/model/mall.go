package model

import "golang.org/x/crypto/bcrypt"

// Mall is a tenant account. It owns its users, products and transactions.
type Mall struct {
	BaseModel
	MallName     string `gorm:"type:varchar(255);not null" json:"mall_name"`
	MallCode     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"mall_code"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	Location     string `gorm:"type:varchar(255)" json:"location"`
	Contact      string `gorm:"type:varchar(100)" json:"contact"`
	TokenVersion string `gorm:"type:varchar(255);default:''" json:"-"`
}

// SetPassword hashes and sets the mall's password
func (m *Mall) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	m.Password = hashed
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (m *Mall) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) == nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
