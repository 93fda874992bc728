package services

import (
	"errors"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"strings"

	"gorm.io/gorm"
)

// ResolveByKey looks an account up by its surrogate key.
func ResolveByKey(id uint) (*models.Account, error) {
	var account models.Account
	if err := db.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ResolveByHandle maps user-entered input to an account. Input containing "@"
// is a full handle and must match exactly. Anything else is treated as the
// local part of an email-shaped handle: the first account (storage order)
// whose handle starts with "input@" wins. If no prefix candidate exists the
// raw input gets one exact-match try, covering handles that were never
// email-shaped in the first place.
//
// Callers using the result as a feed filter must treat ErrNotFound as "zero
// results", not a fault.
func ResolveByHandle(input string) (*models.Account, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrNotFound
	}

	var account models.Account

	if strings.Contains(input, "@") {
		if err := db.DB.Where("handle = ?", input).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &account, nil
	}

	err := db.DB.Where("handle LIKE ?", input+"@%").Order("id ASC").First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No prefix candidate; the input may itself be a complete handle
	if err := db.DB.Where("handle = ?", input).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
