package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/merchant/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MerchantSettings is the embedded-store row holding one shop's
// configuration and translation overrides.
type MerchantSettings struct {
	ID             snowflake.ID   `gorm:"primaryKey"`
	ShopID         string         `gorm:"type:text;not null;uniqueIndex"`
	ShopName       string         `gorm:"type:text;not null;default:''"`
	CompanyName    string         `gorm:"type:text;not null;default:''"`
	TaxNumber      string         `gorm:"type:text;not null;default:''"`
	RegisterNumber string         `gorm:"type:text;not null;default:''"`
	Address        string         `gorm:"type:text;not null;default:''"`
	Email          string         `gorm:"type:text;not null;default:''"`
	PhoneNumber    string         `gorm:"type:text;not null;default:''"`
	LogoURL        string         `gorm:"type:text;not null;default:''"`
	InvoiceLocale  string         `gorm:"type:text;not null;default:'en'"`
	Translations   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MerchantSettings) TableName() string { return "merchant_settings" }

// GormStore persists merchant settings in the embedded database. It is
// the fallback when no remote backend is configured, and the store used
// by tests.
type GormStore struct {
	db    *gorm.DB
	genID *snowflake.Node
	log   *zap.Logger
}

// NewGormStore migrates the settings table and returns the store.
func NewGormStore(db *gorm.DB, genID *snowflake.Node, log *zap.Logger) (*GormStore, error) {
	if err := db.AutoMigrate(&MerchantSettings{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db, genID: genID, log: log.Named("merchant.gormstore")}, nil
}

func (s *GormStore) GetConfiguration(ctx context.Context, shopID string) (domain.Configuration, error) {
	row, err := s.load(ctx, shopID)
	if err != nil || row == nil {
		return domain.Configuration{}, err
	}
	return domain.Configuration{
		ShopName:       row.ShopName,
		CompanyName:    row.CompanyName,
		TaxNumber:      row.TaxNumber,
		RegisterNumber: row.RegisterNumber,
		Address:        row.Address,
		Email:          row.Email,
		PhoneNumber:    row.PhoneNumber,
		LogoURL:        row.LogoURL,
		InvoiceLocale:  row.InvoiceLocale,
	}, nil
}

func (s *GormStore) PutConfiguration(ctx context.Context, shopID string, cfg domain.Configuration) error {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return domain.ErrInvalidShop
	}
	row := MerchantSettings{
		ID:             s.genID.Generate(),
		ShopID:         shopID,
		ShopName:       cfg.ShopName,
		CompanyName:    cfg.CompanyName,
		TaxNumber:      cfg.TaxNumber,
		RegisterNumber: cfg.RegisterNumber,
		Address:        cfg.Address,
		Email:          cfg.Email,
		PhoneNumber:    cfg.PhoneNumber,
		LogoURL:        cfg.LogoURL,
		InvoiceLocale:  cfg.InvoiceLocale,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shop_name", "company_name", "tax_number", "register_number",
			"address", "email", "phone_number", "logo_url", "invoice_locale",
			"updated_at",
		}),
	}).Create(&row).Error
}

func (s *GormStore) GetTranslations(ctx context.Context, shopID string) (domain.Translations, error) {
	row, err := s.load(ctx, shopID)
	if err != nil || row == nil || len(row.Translations) == 0 {
		return domain.Translations{}, err
	}
	translations := domain.Translations{}
	if err := json.Unmarshal(row.Translations, &translations); err != nil {
		s.log.Warn("stored translations are malformed", zap.String("shop_id", shopID), zap.Error(err))
		return domain.Translations{}, nil
	}
	return translations, nil
}

func (s *GormStore) PutTranslations(ctx context.Context, shopID string, translations domain.Translations) error {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return domain.ErrInvalidShop
	}
	raw, err := json.Marshal(translations)
	if err != nil {
		return err
	}
	row := MerchantSettings{
		ID:           s.genID.Generate(),
		ShopID:       shopID,
		Translations: datatypes.JSON(raw),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"translations", "updated_at"}),
	}).Create(&row).Error
}

func (s *GormStore) load(ctx context.Context, shopID string) (*MerchantSettings, error) {
	if shopID = strings.TrimSpace(shopID); shopID == "" {
		return nil, domain.ErrInvalidShop
	}
	var row MerchantSettings
	err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
