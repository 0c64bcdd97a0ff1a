package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/validator"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (s *MemberService) List(ctx context.Context, search string, page pagination.Page) (pagination.Result[MemberResponse], error) {
	members, count, err := s.memberRepository.List(ctx, s.db, strings.TrimSpace(search), page)
	if err != nil {
		return pagination.Result[MemberResponse]{}, fmt.Errorf("list members: %w", err)
	}

	results := make([]MemberResponse, 0, len(members))
	for i := range members {
		results = append(results, NewMemberResponse(&members[i]))
	}
	return pagination.NewResult(page, count, results), nil
}

func (s *MemberService) Get(ctx context.Context, id string) (*MemberResponse, error) {
	member, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	response := NewMemberResponse(member)
	return &response, nil
}

func (s *MemberService) Create(ctx context.Context, request *MemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)
	normalized := normalize(request)
	member := model.NewMember(normalized.Name, normalized.CPF, normalized.Phone, normalized.Email)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.checkUnique(ctx, tx, member, ""); err != nil {
			return err
		}

		if err := s.memberRepository.Create(ctx, tx, member); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("create member: %w", s.duplicateCause(ctx, tx, member, ""))
			}
			log.Error("Failed to create member", "error", err)
			return fmt.Errorf("create member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Member created", "member_id", member.ID, "cpf", logger.MaskNationalID(member.CPF))
	response := NewMemberResponse(member)
	return &response, nil
}

// Update replaces every editable field
func (s *MemberService) Update(ctx context.Context, id string, request *MemberRequest) (*MemberResponse, error) {
	return s.modify(ctx, id, func(*model.Member) (*MemberRequest, error) {
		return request, nil
	})
}

// Patch changes only the fields present in the request and validates the merged record
func (s *MemberService) Patch(ctx context.Context, id string, patch *PatchMemberRequest) (*MemberResponse, error) {
	return s.modify(ctx, id, func(current *model.Member) (*MemberRequest, error) {
		merged := requestFrom(current)
		patch.applyTo(&merged)
		if err := validator.ValidateStruct(&merged); err != nil {
			return nil, fmt.Errorf("patch member: %w", err)
		}
		return &merged, nil
	})
}

func (s *MemberService) modify(ctx context.Context, id string, build func(*model.Member) (*MemberRequest, error)) (*MemberResponse, error) {
	var response MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		request, err := build(member)
		if err != nil {
			return err
		}

		normalized := normalize(request)
		member.Name = normalized.Name
		member.CPF = normalized.CPF
		member.Phone = normalized.Phone
		member.Email = normalized.Email

		if err := s.checkUnique(ctx, tx, member, member.ID); err != nil {
			return err
		}

		if err := s.memberRepository.Save(ctx, tx, member); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("update member: %w", s.duplicateCause(ctx, tx, member, member.ID))
			}
			return fmt.Errorf("update member: %w", err)
		}

		response = NewMemberResponse(member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete refuses members still referenced by loans or history
func (s *MemberService) Delete(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		referenced, err := s.memberRepository.IsReferenced(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("check member references: %w", err)
		}
		if referenced {
			return fmt.Errorf("delete member id=%s: %w", id, ErrMemberInUse)
		}

		if err := s.memberRepository.Delete(ctx, tx, member); err != nil {
			if database.IsForeignKeyViolation(err) {
				return fmt.Errorf("delete member id=%s: %w", id, ErrMemberInUse)
			}
			return fmt.Errorf("delete member: %w", err)
		}

		logger.FromContext(ctx).Info("Member deleted", "member_id", id)
		return nil
	})
}

func (s *MemberService) find(ctx context.Context, db *gorm.DB, id string) (*model.Member, error) {
	member, err := s.memberRepository.FindByID(ctx, db, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("member id=%s: %w", id, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

func (s *MemberService) checkUnique(ctx context.Context, tx *gorm.DB, member *model.Member, excludeID string) error {
	taken, err := s.memberRepository.IsCPFTaken(ctx, tx, member.CPF, excludeID)
	if err != nil {
		return fmt.Errorf("check cpf: %w", err)
	}
	if taken {
		return fmt.Errorf("cpf=%s: %w", logger.MaskNationalID(member.CPF), ErrCPFTaken)
	}

	taken, err = s.memberRepository.IsEmailTaken(ctx, tx, member.Email, excludeID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return fmt.Errorf("email=%s: %w", logger.MaskEmail(member.Email), ErrEmailTaken)
	}
	return nil
}

// duplicateCause names the field behind a unique index violation that slipped past
// checkUnique, e.g. a row committed concurrently.
func (s *MemberService) duplicateCause(ctx context.Context, tx *gorm.DB, member *model.Member, excludeID string) error {
	if err := s.checkUnique(ctx, tx, member, excludeID); err != nil {
		return err
	}
	return ErrMemberConflict
}

// normalize keeps digits of cpf and phone and lower-cases the email; a blank phone becomes nil
func normalize(r *MemberRequest) MemberRequest {
	out := MemberRequest{
		Name:  strings.TrimSpace(r.Name),
		CPF:   validator.DigitsOnly(r.CPF),
		Email: strings.ToLower(strings.TrimSpace(r.Email)),
	}
	if r.Phone != nil {
		if digits := validator.DigitsOnly(*r.Phone); digits != "" {
			out.Phone = &digits
		}
	}
	return out
}
