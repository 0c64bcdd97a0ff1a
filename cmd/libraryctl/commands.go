package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcellhenrique/LibrarySystem/internal/account"
	"github.com/marcellhenrique/LibrarySystem/internal/config"
	"github.com/marcellhenrique/LibrarySystem/internal/model"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/database"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/validator"
	"github.com/spf13/cobra"
)

var errPasswordMismatch = errors.New("passwords do not match")

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "libraryctl",
		Short:         "Administration console for the library backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.env, "env", "local", "Environment (local|dev|production)")

	root.AddCommand(
		newMigrateCmd(a),
		newCreateSuperuserCmd(a),
		newDeactivateCmd(a),
		newPromoteCmd(a),
	)
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(cfg *config.Config, db *database.DB) error {
				if reset {
					resetCfg := *cfg
					resetCfg.Database.IsAutoMigrate = true
					if err := database.Migrate(db.DB, &resetCfg); err != nil {
						return err
					}
					a.printf("tables dropped and recreated\n")
					return nil
				}
				if err := database.AutoMigrate(db.DB); err != nil {
					return err
				}
				a.printf("tables migrated\n")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table before migrating (refused in production)")
	return cmd
}

type superuserInput struct {
	Login    string `binding:"required,max=50"`
	Email    string `binding:"required,email,max=255"`
	Name     string `binding:"required,trimmin=2,max=255"`
	Role     string `binding:"max=100"`
	Password string `binding:"required,min=8,max=128"`
}

func newCreateSuperuserCmd(a *app) *cobra.Command {
	var input superuserInput

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input.Password == "" {
				password, err := a.readPassword("Password: ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				confirm, err := a.readPassword("Password (again): ")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				if password != confirm {
					return errPasswordMismatch
				}
				input.Password = password
			}

			if err := validator.RegisterAll(); err != nil {
				return err
			}
			if err := validator.ValidateStruct(&input); err != nil {
				return err
			}

			return a.withAccounts(cmd.Context(), func(ctx context.Context, accounts *account.AccountService) error {
				created, err := accounts.CreateSuperuser(ctx, input.Login, input.Email, input.Name, input.Role, input.Password)
				if err != nil {
					return err
				}
				a.printf("superuser %q created (id %s)\n", created.Login, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&input.Login, "login", "", "login name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Role, "role", "", "role label (default Administrator)")
	cmd.Flags().StringVar(&input.Password, "password", "", "password; prompted when omitted")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDeactivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <login>",
		Short: "Block an account from signing in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateFlags(cmd.Context(), args[0], "deactivated", func(acc *model.StaffAccount) {
				acc.IsActive = false
			})
		},
	}
}

func newPromoteCmd(a *app) *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "promote <login>",
		Short: "Grant staff member access to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateFlags(cmd.Context(), args[0], "promoted", func(acc *model.StaffAccount) {
				acc.IsStaffMember = true
				if admin {
					acc.IsAdmin = true
				}
			})
		},
	}
	cmd.Flags().BoolVar(&admin, "admin", false, "also grant administrator rights")
	return cmd
}

func (a *app) updateFlags(ctx context.Context, login, verb string, fn func(*model.StaffAccount)) error {
	return a.withAccounts(ctx, func(ctx context.Context, accounts *account.AccountService) error {
		updated, err := accounts.UpdateFlagsByLogin(ctx, login, fn)
		if err != nil {
			return err
		}
		a.printf("account %q %s (active=%t staff=%t admin=%t)\n",
			updated.Login, verb, updated.IsActive, updated.IsStaffMember, updated.IsAdmin)
		return nil
	})
}
