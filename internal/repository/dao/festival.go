package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFestivalNotFound = errors.New("festival not found")
	ErrTentNotFound     = errors.New("tent not found")
	ErrPriceNotFound    = errors.New("price not found")
)

type Festival struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Location  string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	IsActive  bool      `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Tent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FestivalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Festival   Festival  `gorm:"foreignKey:FestivalID"`
	Name       string    `gorm:"not null"`
	CreatedAt  time.Time
}

// TentPrice overrides the festival-wide price for one drink type at one tent.
type TentPrice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FestivalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tent_price"`
	TentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tent_price"`
	DrinkType  string    `gorm:"not null;uniqueIndex:idx_tent_price"`
	PriceCents int       `gorm:"not null"`
}

// FestivalPrice is the festival-wide default price for one drink type.
type FestivalPrice struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FestivalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_festival_price"`
	DrinkType  string    `gorm:"not null;uniqueIndex:idx_festival_price"`
	PriceCents int       `gorm:"not null"`
}

type FestivalDAO struct {
	db *gorm.DB
}

func NewFestivalDAO(db *gorm.DB) *FestivalDAO {
	return &FestivalDAO{
		db: db,
	}
}

func (d *FestivalDAO) List(ctx context.Context) ([]Festival, error) {
	var festivals []Festival
	err := d.db.WithContext(ctx).Order("start_date DESC").Find(&festivals).Error
	if err != nil {
		return nil, err
	}

	return festivals, nil
}

func (d *FestivalDAO) GetByID(ctx context.Context, id uuid.UUID) (Festival, error) {
	var festival Festival
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&festival).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Festival{}, ErrFestivalNotFound
	}
	if err != nil {
		return Festival{}, err
	}

	return festival, nil
}

func (d *FestivalDAO) ListTents(ctx context.Context, festivalID uuid.UUID) ([]Tent, error) {
	var tents []Tent
	err := d.db.WithContext(ctx).
		Where("festival_id = ?", festivalID).
		Order("name ASC").
		Find(&tents).Error
	if err != nil {
		return nil, err
	}

	return tents, nil
}

func (d *FestivalDAO) FindTentPrice(ctx context.Context, festivalID, tentID uuid.UUID, drinkType string) (int, error) {
	var price TentPrice
	err := d.db.WithContext(ctx).
		Where("festival_id = ? AND tent_id = ? AND drink_type = ?", festivalID, tentID, drinkType).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrPriceNotFound
	}
	if err != nil {
		return 0, err
	}

	return price.PriceCents, nil
}

func (d *FestivalDAO) FindFestivalPrice(ctx context.Context, festivalID uuid.UUID, drinkType string) (int, error) {
	var price FestivalPrice
	err := d.db.WithContext(ctx).
		Where("festival_id = ? AND drink_type = ?", festivalID, drinkType).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrPriceNotFound
	}
	if err != nil {
		return 0, err
	}

	return price.PriceCents, nil
}
