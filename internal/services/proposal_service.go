package services

import (
	"context"
	"fmt"

	"freelanceBack/internal/models"
	"freelanceBack/internal/repositories"
)

type ProposalService struct {
	ProposalRepo  *repositories.ProposalRepository
	ProjectRepo   *repositories.ProjectRepository
	UserRepo      *repositories.UserRepository
	Notifications *NotificationService
}

// SubmitProposal records a freelancer's bid and pushes a notification to the
// project's client. Proposals are only accepted while the project is open.
func (s *ProposalService) SubmitProposal(ctx context.Context, p models.Proposal) (models.Proposal, error) {
	project, err := s.ProjectRepo.GetProjectByID(ctx, p.ProjectID)
	if err != nil {
		return models.Proposal{}, err
	}
	if project.Status != models.ProjectStatusOpen {
		return models.Proposal{}, models.ErrProposalState
	}

	created, err := s.ProposalRepo.CreateProposal(ctx, p)
	if err != nil {
		return models.Proposal{}, err
	}

	freelancer, err := s.UserRepo.GetUserByID(ctx, p.FreelancerID)
	if err == nil {
		body := fmt.Sprintf("%s %s sent a proposal for \"%s\"",
			freelancer.FirstName, freelancer.LastName, project.Title)
		s.Notifications.Notify(ctx, project.ClientID, "New proposal", body,
			"/project/"+project.ID)
	}
	return created, nil
}

func (s *ProposalService) GetProposalsByProjectID(ctx context.Context, projectID, callerID string) ([]models.Proposal, error) {
	project, err := s.ProjectRepo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != callerID {
		return nil, models.ErrNotProjectClient
	}
	return s.ProposalRepo.GetProposalsByProjectID(ctx, projectID)
}

func (s *ProposalService) GetProposalsByFreelancerID(ctx context.Context, freelancerID string) ([]models.Proposal, error) {
	return s.ProposalRepo.GetProposalsByFreelancerID(ctx, freelancerID)
}

// AcceptProposal accepts one proposal, rejects the remaining pending ones and
// moves the project to in_progress. Only the project client may accept.
func (s *ProposalService) AcceptProposal(ctx context.Context, proposalID, callerID string) error {
	proposal, err := s.ProposalRepo.GetProposalByID(ctx, proposalID)
	if err != nil {
		return err
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, proposal.ProjectID)
	if err != nil {
		return err
	}
	if project.ClientID != callerID {
		return models.ErrNotProjectClient
	}

	if err := s.ProposalRepo.AcceptProposal(ctx, proposalID, proposal.ProjectID); err != nil {
		return err
	}

	s.Notifications.Notify(ctx, proposal.FreelancerID, "Proposal accepted",
		fmt.Sprintf("Your proposal for \"%s\" was accepted", project.Title),
		"/project/"+project.ID)
	return nil
}

func (s *ProposalService) RejectProposal(ctx context.Context, proposalID, callerID string) error {
	proposal, err := s.ProposalRepo.GetProposalByID(ctx, proposalID)
	if err != nil {
		return err
	}
	project, err := s.ProjectRepo.GetProjectByID(ctx, proposal.ProjectID)
	if err != nil {
		return err
	}
	if project.ClientID != callerID {
		return models.ErrNotProjectClient
	}
	return s.ProposalRepo.RejectProposal(ctx, proposalID)
}
