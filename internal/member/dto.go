package member

import (
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
)

// MemberRequest is the body of POST and PUT. CPF and phone may carry formatting.
type MemberRequest struct {
	Name  string  `json:"name" binding:"required,trimmin=2,max=255"`
	CPF   string  `json:"cpf" binding:"required,cpf"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
	Email string  `json:"email" binding:"required,email,max=255"`
}

// PatchMemberRequest carries only the fields to change; the merged record is
// validated with MemberRequest rules
type PatchMemberRequest struct {
	Name  *string `json:"name"`
	CPF   *string `json:"cpf"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

func (p *PatchMemberRequest) applyTo(r *MemberRequest) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.CPF != nil {
		r.CPF = *p.CPF
	}
	if p.Phone != nil {
		r.Phone = p.Phone
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
}

type MemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMemberResponse(m *model.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		CPF:       m.CPF,
		Phone:     m.Phone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func requestFrom(m *model.Member) MemberRequest {
	return MemberRequest{
		Name:  m.Name,
		CPF:   m.CPF,
		Phone: m.Phone,
		Email: m.Email,
	}
}
