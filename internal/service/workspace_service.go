package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soundforge/api/internal/model"
)

// WorkspaceService manages per-project workspaces.
type WorkspaceService struct {
	redis *redis.Client
}

func NewWorkspaceService(redisClient *redis.Client) *WorkspaceService {
	return &WorkspaceService{redis: redisClient}
}

// CreateWorkspace creates a new workspace for the user.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, userID string, req *model.WorkspaceCreateRequest) (*model.Workspace, error) {
	now := time.Now()
	workspace := &model.Workspace{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.saveWorkspace(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to save workspace: %w", err)
	}
	if err := s.redis.SAdd(ctx, userWorkspacesKey(userID), workspace.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspace returns one workspace owned by the user.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, userID, workspaceID string) (*model.Workspace, error) {
	workspace, err := s.loadWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.UserID != userID {
		return nil, fmt.Errorf("workspace not found")
	}
	return workspace, nil
}

// ListWorkspaces returns the user's workspaces, newest first.
func (s *WorkspaceService) ListWorkspaces(ctx context.Context, userID string) (*model.WorkspaceListResponse, error) {
	ids, err := s.redis.SMembers(ctx, userWorkspacesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	workspaces := make([]model.Workspace, 0, len(ids))
	for _, id := range ids {
		workspace, err := s.loadWorkspace(ctx, id)
		if err != nil {
			continue
		}
		workspaces = append(workspaces, *workspace)
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].CreatedAt.After(workspaces[j].CreatedAt)
	})

	return &model.WorkspaceListResponse{Workspaces: workspaces}, nil
}

// DeleteWorkspace removes a workspace record.
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID string) error {
	if _, err := s.GetWorkspace(ctx, userID, workspaceID); err != nil {
		return err
	}
	if err := s.redis.Del(ctx, workspaceKey(workspaceID)).Err(); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return s.redis.SRem(ctx, userWorkspacesKey(userID), workspaceID).Err()
}

func (s *WorkspaceService) saveWorkspace(ctx context.Context, workspace *model.Workspace) error {
	data, err := json.Marshal(workspace)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, workspaceKey(workspace.ID), data, 0).Err()
}

func (s *WorkspaceService) loadWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	data, err := s.redis.Get(ctx, workspaceKey(workspaceID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("workspace not found")
		}
		return nil, err
	}

	var workspace model.Workspace
	if err := json.Unmarshal(data, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

func workspaceKey(workspaceID string) string {
	return fmt.Sprintf("workspace:%s", workspaceID)
}

func userWorkspacesKey(userID string) string {
	return fmt.Sprintf("user:%s:workspaces", userID)
}
