package member

import (
	"context"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (r *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *MemberRepository) Save(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

func (r *MemberRepository) Delete(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Delete(member).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) IsCPFTaken(ctx context.Context, db *gorm.DB, cpf, excludeID string) (bool, error) {
	return r.exists(ctx, db, "cpf = ?", cpf, excludeID)
}

func (r *MemberRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email, excludeID string) (bool, error) {
	return r.exists(ctx, db, "email = ?", email, excludeID)
}

func (r *MemberRepository) exists(ctx context.Context, db *gorm.DB, cond, value, excludeID string) (bool, error) {
	query := db.WithContext(ctx).Model(&model.Member{}).Where(cond, value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsReferenced reports whether any loan or history entry points at the member
func (r *MemberRepository) IsReferenced(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var loans int64
	if err := db.WithContext(ctx).Model(&model.Loan{}).Where("member_id = ?", id).Count(&loans).Error; err != nil {
		return false, err
	}
	if loans > 0 {
		return true, nil
	}

	var entries int64
	if err := db.WithContext(ctx).Model(&model.HistoryEntry{}).Where("member_id = ?", id).Count(&entries).Error; err != nil {
		return false, err
	}
	return entries > 0, nil
}

// List searches name, email and cpf and orders by name
func (r *MemberRepository) List(ctx context.Context, db *gorm.DB, search string, page pagination.Page) ([]model.Member, int64, error) {
	query := db.WithContext(ctx).Model(&model.Member{})
	if search != "" {
		pattern := pagination.LikePattern(search)
		query = query.Where(pagination.Like("LOWER(name)")+" OR "+pagination.Like("LOWER(email)")+" OR "+pagination.Like("cpf"), pattern, pattern, pattern)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var members []model.Member
	if err := query.Order("name ASC").Order("id ASC").Scopes(page.Scope()).Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, count, nil
}
