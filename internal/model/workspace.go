package model

import "time"

// Workspace groups songs that belong to one creative project.
type Workspace struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspaceCreateRequest is the request body for workspace creation.
type WorkspaceCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// WorkspaceListResponse wraps the user's workspaces.
type WorkspaceListResponse struct {
	Workspaces []Workspace `json:"workspaces"`
}
