package domain

// User roles. Dashboards are split along these.
const (
	RoleAdmin       = "admin"
	RoleMGO         = "mgo"
	RoleDevDirector = "dev_director"
	RoleCEO         = "ceo"
	RoleStaff       = "staff"
)

// User is a staff member who owns opportunities, tasks, portfolios and interactions.
type User struct {
	Base
	Email     string `gorm:"column:email;not null;uniqueIndex" json:"email" validate:"required,email"`
	FirstName string `gorm:"column:first_name" json:"firstName"`
	LastName  string `gorm:"column:last_name" json:"lastName"`
	Role      string `gorm:"column:role;type:varchar(20);not null;default:'staff'" json:"role" validate:"oneof=admin mgo dev_director ceo staff"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleStaff
	}
}
