package services

import (
	"context"
	"fmt"

	"freelanceBack/internal/models"
	"freelanceBack/internal/repositories"
	"freelanceBack/utils"
)

type MilestoneService struct {
	MilestoneRepo *repositories.MilestoneRepository
	ProjectRepo   *repositories.ProjectRepository
	Notifications *NotificationService
	Storage       *utils.S3Storage
}

// CreateMilestone lets the project client carve a paid unit of work for the
// assigned freelancer. The project must be funded before milestones exist,
// otherwise approval could release money that was never collected.
func (s *MilestoneService) CreateMilestone(ctx context.Context, m models.Milestone, callerID string) (models.Milestone, error) {
	if m.Amount <= 0 {
		return models.Milestone{}, models.ErrInvalidAmount
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, m.ProjectID)
	if err != nil {
		return models.Milestone{}, err
	}
	if project.ClientID != callerID {
		return models.Milestone{}, models.ErrNotProjectClient
	}
	if project.PaymentRequired && project.PaymentStatus != models.PaymentStatusPaid {
		return models.Milestone{}, models.ErrMilestoneState
	}
	return s.MilestoneRepo.CreateMilestone(ctx, m)
}

func (s *MilestoneService) GetMilestonesByProjectID(ctx context.Context, projectID string) ([]models.Milestone, error) {
	return s.MilestoneRepo.GetMilestonesByProjectID(ctx, projectID)
}

func (s *MilestoneService) GetMilestoneByID(ctx context.Context, id string) (models.Milestone, error) {
	return s.MilestoneRepo.GetMilestoneByID(ctx, id)
}

// SubmitMilestone uploads the optional deliverable and moves the milestone to
// submitted for client review.
func (s *MilestoneService) SubmitMilestone(ctx context.Context, milestoneID, freelancerID string, attachment []byte, attachmentName string) error {
	attachmentURL := ""
	if len(attachment) > 0 {
		u, err := s.Storage.Upload(attachment, attachmentName, "milestones")
		if err != nil {
			return err
		}
		attachmentURL = u
	}

	if err := s.MilestoneRepo.SubmitMilestone(ctx, milestoneID, freelancerID, attachmentURL); err != nil {
		return err
	}

	milestone, err := s.MilestoneRepo.GetMilestoneByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, milestone.ProjectID)
	if err != nil {
		return err
	}
	s.Notifications.Notify(ctx, project.ClientID, "Milestone submitted",
		fmt.Sprintf("\"%s\" is ready for review", milestone.Title),
		"/project/"+project.ID)
	return nil
}

// RejectMilestone sends submitted work back with feedback. No escrow or
// balance row moves on this path.
func (s *MilestoneService) RejectMilestone(ctx context.Context, milestoneID, callerID, feedback string) error {
	milestone, err := s.MilestoneRepo.GetMilestoneByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, milestone.ProjectID)
	if err != nil {
		return err
	}
	if project.ClientID != callerID {
		return models.ErrNotProjectClient
	}
	if err := s.MilestoneRepo.RejectMilestone(ctx, milestoneID, feedback); err != nil {
		return err
	}
	s.Notifications.Notify(ctx, milestone.FreelancerID, "Milestone rejected",
		fmt.Sprintf("\"%s\" needs changes", milestone.Title),
		"/project/"+project.ID)
	return nil
}
