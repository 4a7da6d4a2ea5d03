package repository

import (
	"context"
)

const getAdminUserByEmail = `
SELECT id, email, password, created_at
FROM admin_users
WHERE email = $1
`

func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error) {
	row := q.db.QueryRow(ctx, getAdminUserByEmail, email)
	var a AdminUser
	err := row.Scan(&a.ID, &a.Email, &a.Password, &a.CreatedAt)
	return a, err
}
