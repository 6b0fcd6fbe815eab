package service

import (
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/secrets"
)

// providerTokenKey is the setting row holding the encrypted provider token.
const providerTokenKey = "marketdata.provider_token"

// SettingService stores application settings. Secret values are encrypted
// before they reach the database.
type SettingService struct {
	settingRepo *repository.SettingRepository
	box         *secrets.Box
}

// NewSettingService creates a new SettingService with the provided dependencies.
func NewSettingService(settingRepo *repository.SettingRepository, box *secrets.Box) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		box:         box,
	}
}

// SetProviderToken encrypts and stores a market-data provider token.
func (s *SettingService) SetProviderToken(token string) error {
	encrypted, err := s.box.Encrypt(token)
	if err != nil {
		return err
	}
	return s.settingRepo.Set(providerTokenKey, encrypted)
}

// GetProviderToken decrypts and returns the stored provider token.
// Returns apperrors.ErrSettingNotFound when none was stored.
func (s *SettingService) GetProviderToken() (string, error) {
	encrypted, err := s.settingRepo.Get(providerTokenKey)
	if err != nil {
		return "", err
	}
	return s.box.Decrypt(encrypted)
}
