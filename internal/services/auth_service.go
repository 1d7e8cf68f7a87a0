package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/internal/utils"
	"decide-backend/pkg/logger"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterUser creates an account. The first account ever created becomes
// the administrator.
func RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.ErrUserAlreadyExists
		}

		var userCount int64
		if err := tx.Model(&models.User{}).Count(&userCount).Error; err != nil {
			return err
		}
		if userCount == 0 {
			user.Role = models.RoleAdmin
		}

		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrUserAlreadyExists) || database.IsUniqueViolationError(err) {
			return nil, models.ErrUserAlreadyExists
		}
		return nil, errors.Wrap(err, "register user")
	}

	logger.Log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// LoginUser checks the credentials and issues a token.
func LoginUser(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if database.IsNotFoundError(err) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, "find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, errors.Wrap(err, "generate token")
	}

	return token, &user, nil
}

// ChangePassword replaces the password of userID after checking the current
// one.
func ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	var stored models.User
	if err := database.DB.WithContext(ctx).Select("password").First(&stored, userID).Error; err != nil {
		return errors.Wrap(err, "load password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(current)); err != nil {
		return models.ErrWrongPassword
	}

	_, err = UpdateUser(ctx, userID, UserUpdate{Password: &next}, user.Username)
	return err
}

// EnsureAdminUser creates the bootstrap administrator when it does not exist
// yet. An existing account with that name is promoted, its password is left
// alone.
func EnsureAdminUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, nil
	}

	var user models.User
	err := database.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		if user.IsAdmin() {
			return &user, nil
		}
		if err := database.DB.WithContext(ctx).Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, errors.Wrap(err, "promote admin")
		}
		user.Role = models.RoleAdmin
		InvalidateUser(ctx, user.ID)
		logger.Log.Info("Existing user promoted to admin", zap.String("username", username))
		return &user, nil
	case !database.IsNotFoundError(err):
		return nil, errors.Wrap(err, "find admin")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user = models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := database.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "create admin")
	}

	logger.Log.Info("Admin user created", zap.String("username", username))
	return &user, nil
}
