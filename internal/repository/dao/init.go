package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Festival{},
		&Tent{},
		&TentPrice{},
		&FestivalPrice{},
		&Attendance{},
		&Consumption{},
		&LocationSession{},
		&LocationPoint{},
		&Group{},
		&GroupMember{},
	)
}
