package model

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleMentor UserRole = "mentor"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleMentor
}

type User struct {
	BaseModel
	Name        string   `gorm:"size:100;not null" json:"name"`
	Email       string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string   `gorm:"size:100;not null" json:"-"`
	Role        UserRole `gorm:"size:20;default:'user'" json:"role"`
	CareerGap   int      `gorm:"default:0" json:"career_gap"` // years
	Skills      []string `gorm:"type:text;serializer:json" json:"skills"`
	Personality string   `gorm:"size:32" json:"personality"`
}

func (User) TableName() string {
	return "users"
}
