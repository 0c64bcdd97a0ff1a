package account

import (
	"context"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) Create(ctx context.Context, db *gorm.DB, account *model.StaffAccount) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) Save(ctx context.Context, db *gorm.DB, account *model.StaffAccount) error {
	return db.WithContext(ctx).Save(account).Error
}

func (r *AccountRepository) Delete(ctx context.Context, db *gorm.DB, account *model.StaffAccount) error {
	return db.WithContext(ctx).Delete(account).Error
}

func (r *AccountRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*model.StaffAccount, error) {
	var account model.StaffAccount
	err := db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByLogin(ctx context.Context, db *gorm.DB, login string) (*model.StaffAccount, error) {
	var account model.StaffAccount
	err := db.WithContext(ctx).Where("login = ?", login).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// IsLoginTaken and IsEmailTaken ignore the account with excludeID, if any
func (r *AccountRepository) IsLoginTaken(ctx context.Context, db *gorm.DB, login, excludeID string) (bool, error) {
	return r.exists(ctx, db, "login = ?", login, excludeID)
}

func (r *AccountRepository) IsEmailTaken(ctx context.Context, db *gorm.DB, email, excludeID string) (bool, error) {
	return r.exists(ctx, db, "LOWER(email) = LOWER(?)", email, excludeID)
}

func (r *AccountRepository) exists(ctx context.Context, db *gorm.DB, cond string, value, excludeID string) (bool, error) {
	query := db.WithContext(ctx).Model(&model.StaffAccount{}).Where(cond, value)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of accounts ordered by login together with the total match count
func (r *AccountRepository) List(ctx context.Context, db *gorm.DB, search string, page pagination.Page) ([]model.StaffAccount, int64, error) {
	query := db.WithContext(ctx).Model(&model.StaffAccount{})
	if search != "" {
		pattern := pagination.LikePattern(search)
		query = query.Where(pagination.Like("LOWER(login)")+" OR "+pagination.Like("LOWER(name)")+" OR "+pagination.Like("LOWER(email)"), pattern, pattern, pattern)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var accounts []model.StaffAccount
	if err := query.Order("login ASC").Scopes(page.Scope()).Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, count, nil
}
