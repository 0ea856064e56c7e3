package users

type User struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(50);not null"`
	Surname      string `gorm:"type:varchar(50);not null"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex:ux_users_email"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'User'"`
}

func (User) TableName() string { return "users" }
