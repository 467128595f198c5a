package cli

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/minimarks/minimarks/internal/database"
	"github.com/minimarks/minimarks/internal/entities"
)

func lookupUser(db *database.Database, username string) (*entities.User, error) {
	var user entities.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q does not exist, register it first", username)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
