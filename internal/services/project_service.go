package services

import (
	"context"

	"freelanceBack/internal/models"
	"freelanceBack/internal/repositories"
)

type ProjectService struct {
	ProjectRepo *repositories.ProjectRepository
}

func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	return s.ProjectRepo.CreateProject(ctx, project)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id string) (models.Project, error) {
	return s.ProjectRepo.GetProjectByID(ctx, id)
}

func (s *ProjectService) GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	return s.ProjectRepo.GetProjects(ctx, filter)
}

func (s *ProjectService) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	return s.ProjectRepo.UpdateProject(ctx, project)
}

func (s *ProjectService) CompleteProject(ctx context.Context, projectID, callerID string) error {
	project, err := s.ProjectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.ClientID != callerID {
		return models.ErrNotProjectClient
	}
	return s.ProjectRepo.UpdateStatus(ctx, projectID, models.ProjectStatusCompleted)
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID, callerID string) error {
	return s.ProjectRepo.DeleteProject(ctx, projectID, callerID)
}
