package model

import "gorm.io/gorm"

// Member is a library patron. CPF is the 11 digit Brazilian national ID.
type Member struct {
	ID string `gorm:"column:id;size:36;primaryKey"`

	Name  string  `gorm:"column:name;size:255;not null"`
	CPF   string  `gorm:"column:cpf;size:11;not null;uniqueIndex:idx_member_cpf"`
	Phone *string `gorm:"column:phone;size:15"`
	Email string  `gorm:"column:email;size:255;not null;uniqueIndex:idx_member_email"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// NewMember expects already normalised cpf, phone and email values
func NewMember(name, cpf string, phone *string, email string) *Member {
	return &Member{
		Name:  name,
		CPF:   cpf,
		Phone: phone,
		Email: email,
	}
}
