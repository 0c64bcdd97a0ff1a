package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/pagination"
	"gorm.io/gorm"
)

const DefaultRole = "Librarian"

type AccountService struct {
	db                *gorm.DB
	accountRepository *AccountRepository
}

func NewAccountService(db *gorm.DB, accountRepository *AccountRepository) *AccountService {
	return &AccountService{
		db:                db,
		accountRepository: accountRepository,
	}
}

// ResolveAccount loads the account behind an access token for the permission guards
func (s *AccountService) ResolveAccount(ctx context.Context, accountID string) (*model.StaffAccount, error) {
	account, err := s.accountRepository.FindByID(ctx, s.db, accountID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("account id=%s: %w", accountID, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

func (s *AccountService) FindByLogin(ctx context.Context, login string) (*model.StaffAccount, error) {
	account, err := s.accountRepository.FindByLogin(ctx, s.db, strings.TrimSpace(login))
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("account login=%s: %w", login, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("find account by login: %w", err)
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context, search string, page pagination.Page) (pagination.Result[AccountResponse], error) {
	accounts, count, err := s.accountRepository.List(ctx, s.db, strings.TrimSpace(search), page)
	if err != nil {
		return pagination.Result[AccountResponse]{}, fmt.Errorf("list accounts: %w", err)
	}

	results := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		results = append(results, NewAccountResponse(&accounts[i]))
	}
	return pagination.NewResult(page, count, results), nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*AccountResponse, error) {
	account, err := s.ResolveAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	response := NewAccountResponse(account)
	return &response, nil
}

// Create inserts an account. Accounts created by an administrator are staff members unless stated otherwise.
func (s *AccountService) Create(ctx context.Context, request *CreateAccountRequest) (*AccountResponse, error) {
	staffMember := true
	if request.IsStaffMember != nil {
		staffMember = *request.IsStaffMember
	}

	hash, err := HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := model.NewStaffAccount(
		strings.TrimSpace(request.Login),
		normalizeEmail(request.Email),
		strings.TrimSpace(request.Name),
		roleOrDefault(request.Role),
		hash,
		staffMember,
	)
	account.IsAdmin = request.IsAdmin

	if err := s.insert(ctx, account); err != nil {
		return nil, err
	}

	response := NewAccountResponse(account)
	return &response, nil
}

// CreateSuperuser inserts an active administrator; used by the admin console
func (s *AccountService) CreateSuperuser(ctx context.Context, login, email, name, role, password string) (*model.StaffAccount, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := model.NewSuperuser(strings.TrimSpace(login), normalizeEmail(email), strings.TrimSpace(name), hash)
	if role != "" {
		account.Role = strings.TrimSpace(role)
	}

	if err := s.insert(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) insert(ctx context.Context, account *model.StaffAccount) error {
	log := logger.FromContext(ctx)

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.checkUnique(ctx, tx, account.Login, account.Email, ""); err != nil {
			return err
		}

		if err := s.accountRepository.Create(ctx, tx, account); err != nil {
			if database.IsDuplicateKey(err) {
				// a concurrent insert won; report the field it took
				if cause := s.checkUnique(ctx, tx, account.Login, account.Email, ""); cause != nil {
					return fmt.Errorf("create account: %w", cause)
				}
				return fmt.Errorf("create account: %w", ErrLoginTaken)
			}
			log.Error("Failed to create account", "error", err)
			return fmt.Errorf("create account: %w", err)
		}

		log.Info("Staff account created", "account_id", account.ID, "login", account.Login, "email", logger.MaskEmail(account.Email))
		return nil
	})
}

func (s *AccountService) Update(ctx context.Context, id string, request *UpdateAccountRequest) (*AccountResponse, error) {
	var response AccountResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		account, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		email := normalizeEmail(request.Email)
		if err := s.checkUnique(ctx, tx, "", email, account.ID); err != nil {
			return err
		}

		account.Email = email
		account.Name = strings.TrimSpace(request.Name)
		account.Role = roleOrDefault(request.Role)
		account.IsActive = request.IsActive
		account.IsStaffMember = request.IsStaffMember
		account.IsAdmin = request.IsAdmin

		if request.Password != "" {
			hash, err := HashPassword(request.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			account.Password = hash
		}

		if err := s.accountRepository.Save(ctx, tx, account); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("update account: %w", ErrEmailTaken)
			}
			return fmt.Errorf("update account: %w", err)
		}

		response = NewAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Deactivate clears the active flag; actorID is the administrator performing the change
func (s *AccountService) Deactivate(ctx context.Context, actorID, id string) (*AccountResponse, error) {
	if actorID == id {
		return nil, fmt.Errorf("deactivate account id=%s: %w", id, ErrSelfModification)
	}

	var response AccountResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		account, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		account.IsActive = false
		if err := s.accountRepository.Save(ctx, tx, account); err != nil {
			return fmt.Errorf("deactivate account: %w", err)
		}

		logger.FromContext(ctx).Info("Staff account deactivated", "account_id", id, "actor_id", actorID)
		response = NewAccountResponse(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *AccountService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("delete account id=%s: %w", id, ErrSelfModification)
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		account, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.accountRepository.Delete(ctx, tx, account); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}

		logger.FromContext(ctx).Info("Staff account deleted", "account_id", id, "actor_id", actorID)
		return nil
	})
}

// UpdateFlagsByLogin applies fn to the account with login and saves it; used by the admin console
func (s *AccountService) UpdateFlagsByLogin(ctx context.Context, login string, fn func(*model.StaffAccount)) (*model.StaffAccount, error) {
	var account *model.StaffAccount

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.accountRepository.FindByLogin(ctx, tx, strings.TrimSpace(login))
		if err != nil {
			if database.IsNotFound(err) {
				return fmt.Errorf("account login=%s: %w", login, ErrAccountNotFound)
			}
			return fmt.Errorf("find account by login: %w", err)
		}

		fn(found)
		if err := s.accountRepository.Save(ctx, tx, found); err != nil {
			return fmt.Errorf("save account: %w", err)
		}
		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) find(ctx context.Context, tx *gorm.DB, id string) (*model.StaffAccount, error) {
	account, err := s.accountRepository.FindByID(ctx, tx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("account id=%s: %w", id, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// checkUnique skips the login check when login is empty
func (s *AccountService) checkUnique(ctx context.Context, tx *gorm.DB, login, email, excludeID string) error {
	if login != "" {
		taken, err := s.accountRepository.IsLoginTaken(ctx, tx, login, excludeID)
		if err != nil {
			return fmt.Errorf("check login: %w", err)
		}
		if taken {
			return fmt.Errorf("login=%s: %w", login, ErrLoginTaken)
		}
	}

	taken, err := s.accountRepository.IsEmailTaken(ctx, tx, email, excludeID)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return fmt.Errorf("email=%s: %w", logger.MaskEmail(email), ErrEmailTaken)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roleOrDefault(role string) string {
	if r := strings.TrimSpace(role); r != "" {
		return r
	}
	return DefaultRole
}
