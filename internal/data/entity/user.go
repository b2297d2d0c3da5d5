package entity

type User struct {
	Base
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	MobileNo     *string `db:"mobile_no"`
	IsStaff      bool    `db:"is_staff"`
	IsSuperuser  bool    `db:"is_superuser"`
	IsActive     bool    `db:"is_active"`
}
