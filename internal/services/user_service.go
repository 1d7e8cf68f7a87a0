package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userCacheDuration = time.Hour

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// FindUserByID loads a user, going through the Redis cache when available.
func FindUserByID(ctx context.Context, userID uint) (models.User, error) {
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if database.IsNotFoundError(err) {
			return user, models.ErrUserNotFound
		}
		return user, errors.Wrap(err, "find user")
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(ctx, cacheKey, data, userCacheDuration)
		}
	}

	return user, nil
}

// InvalidateUser drops the cached copy of a user.
func InvalidateUser(ctx context.Context, userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(ctx, userCacheKey(userID))
	}
}

// FindUsers retrieves a paginated list of users.
func FindUsers(ctx context.Context, search string, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := database.DB.WithContext(ctx).Model(&models.User{})
	if search != "" {
		db = db.Where("username LIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	offset := (page - 1) * limit
	if err := db.Order("id asc").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "find users")
	}

	return users, total, nil
}

// UserUpdate changes only the non-nil fields.
type UserUpdate struct {
	Password *string
	Role     *string
}

// UpdateUser applies an administrative change to an account.
func UpdateUser(ctx context.Context, id uint, upd UserUpdate, operator string) (*models.User, error) {
	updates := make(map[string]interface{})
	if upd.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
		updates["password"] = string(hashedPassword)
	}
	if upd.Role != nil {
		if *upd.Role != models.RoleAdmin && *upd.Role != models.RoleUser {
			return nil, errors.Wrapf(models.BadParameterError, "invalid role %q", *upd.Role)
		}
		updates["role"] = *upd.Role
	}
	if len(updates) == 0 {
		return nil, errors.Wrap(models.BadParameterError, "no fields to update")
	}

	var user models.User
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if database.IsNotFoundError(err) {
				return models.ErrUserNotFound
			}
			return err
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "update user")
	}

	InvalidateUser(ctx, id)
	logger.Log.Info("User updated",
		zap.Uint("user_id", id),
		zap.String("operator", operator),
		zap.Bool("password_changed", upd.Password != nil),
		zap.Bool("role_changed", upd.Role != nil),
	)
	return &user, nil
}
