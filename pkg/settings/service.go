package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/storage"
	"github.com/pocketledger/pocketledger/pkg/currency"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")
var ErrInvalidCurrency = errors.New("unsupported currency code")
var ErrInvalidTarget = errors.New("monthly target must be a positive number or empty")

// Patch carries preference changes; nil fields are left untouched. An empty
// MonthlyTarget string unsets the target.
type Patch struct {
	Theme         *string
	Currency      *string
	MonthlyTarget *string
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, patch Patch) (Settings, error)
}

type ServiceImpl struct {
	store    storage.Store
	eventBus *event_bus.EventBus
}

func NewService(store storage.Store, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{store: store, eventBus: eventBus}
}

func (s *ServiceImpl) Get(ctx context.Context) (Settings, error) {
	theme, err := s.load(ctx, ThemeKey, DefaultTheme)
	if err != nil {
		return Settings{}, err
	}
	if !slices.Contains(ValidThemes, theme) {
		log.Warnf("stored theme %q is not recognized, falling back to %s", theme, DefaultTheme)
		theme = DefaultTheme
	}

	code, err := s.load(ctx, CurrencyKey, DefaultCurrency)
	if err != nil {
		return Settings{}, err
	}
	if !slices.Contains(currency.Codes(), code) {
		log.Warnf("stored currency %q is not recognized, falling back to %s", code, DefaultCurrency)
		code = DefaultCurrency
	}

	target, err := s.load(ctx, MonthlyTargetKey, "")
	if err != nil {
		return Settings{}, err
	}

	return Settings{Theme: theme, Currency: code, MonthlyTarget: target}, nil
}

func (s *ServiceImpl) Update(ctx context.Context, patch Patch) (Settings, error) {
	// Validate the whole patch before writing anything, so a rejected update
	// never leaves some of its fields persisted.
	if patch.Theme != nil && !slices.Contains(ValidThemes, *patch.Theme) {
		return Settings{}, ErrInvalidTheme
	}
	if patch.Currency != nil && !slices.Contains(currency.Codes(), *patch.Currency) {
		return Settings{}, ErrInvalidCurrency
	}
	if patch.MonthlyTarget != nil && *patch.MonthlyTarget != "" {
		value, err := strconv.ParseFloat(*patch.MonthlyTarget, 64)
		if err != nil || value <= 0 {
			return Settings{}, ErrInvalidTarget
		}
	}

	if patch.Theme != nil {
		if err := s.save(ctx, ThemeKey, *patch.Theme, "theme"); err != nil {
			return Settings{}, err
		}
	}
	if patch.Currency != nil {
		if err := s.save(ctx, CurrencyKey, *patch.Currency, "currency"); err != nil {
			return Settings{}, err
		}
	}
	if patch.MonthlyTarget != nil {
		if err := s.save(ctx, MonthlyTargetKey, *patch.MonthlyTarget, "monthly_target"); err != nil {
			return Settings{}, err
		}
	}
	return s.Get(ctx)
}

func (s *ServiceImpl) load(ctx context.Context, key, fallback string) (string, error) {
	value, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("could not load %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	return value, nil
}

func (s *ServiceImpl) save(ctx context.Context, key, value, field string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("could not save %s: %w", key, err)
	}
	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.SettingsChanged, event_bus.SettingsEvent{
			Field: field,
			Value: value,
		}))
		if err != nil {
			log.Errorf("failed to publish settings change event: %v", err)
		}
	}
	return nil
}
