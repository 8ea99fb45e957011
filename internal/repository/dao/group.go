package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAlreadyMember = errors.New("user is already a group member")
)

type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FestivalID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	InviteToken string    `gorm:"uniqueIndex;not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GroupMember struct {
	GroupID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time `gorm:"not null"`
}

// GroupMemberRow joins a membership with the member's display name.
type GroupMemberRow struct {
	GroupID  uuid.UUID
	UserID   uuid.UUID
	Name     string
	JoinedAt time.Time
}

type GroupDAO struct {
	db *gorm.DB
}

func NewGroupDAO(db *gorm.DB) *GroupDAO {
	return &GroupDAO{
		db: db,
	}
}

// Create inserts the group and its creator's membership in one transaction.
func (d *GroupDAO) Create(ctx context.Context, group Group) (Group, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		member := GroupMember{
			GroupID:  group.ID,
			UserID:   group.CreatedBy,
			JoinedAt: time.Now(),
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		return Group{}, err
	}

	return group, nil
}

func (d *GroupDAO) GetByID(ctx context.Context, id uuid.UUID) (Group, error) {
	var group Group
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Group{}, ErrGroupNotFound
	}
	if err != nil {
		return Group{}, err
	}

	return group, nil
}

func (d *GroupDAO) FindByInviteToken(ctx context.Context, token string) (Group, error) {
	var group Group
	err := d.db.WithContext(ctx).Where("invite_token = ?", token).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Group{}, ErrGroupNotFound
	}
	if err != nil {
		return Group{}, err
	}

	return group, nil
}

// AddMember inserts a membership. A duplicate on the (group, user) primary
// key surfaces as ErrAlreadyMember.
func (d *GroupDAO) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	member := GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}

	err := d.db.WithContext(ctx).Create(&member).Error

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAlreadyMember
	}

	return err
}

func (d *GroupDAO) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *GroupDAO) ListByUser(ctx context.Context, userID uuid.UUID) ([]Group, error) {
	var groups []Group
	err := d.db.WithContext(ctx).
		Joins("JOIN group_members gm ON gm.group_id = groups.id").
		Where("gm.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (d *GroupDAO) ListMembers(ctx context.Context, groupID uuid.UUID) ([]GroupMemberRow, error) {
	var rows []GroupMemberRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT gm.group_id, gm.user_id, u.name, gm.joined_at
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ?
		ORDER BY gm.joined_at ASC`, groupID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
