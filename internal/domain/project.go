package domain

import "time"

// Project groups records under a display name. Projects are created
// implicitly the first time a record references the name and are never
// deleted by the tool.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
