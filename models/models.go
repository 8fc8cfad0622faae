package models

import "time"

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Project struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type Note struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ProjectID *int      `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Project) EntityID() int    { return p.ID }
func (p Project) EntityOwner() int { return p.UserID }

func (n Note) EntityID() int    { return n.ID }
func (n Note) EntityOwner() int { return n.UserID }
