package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"freelanceBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	clientMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleClient))
	freelancerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleFreelancer))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/log_out", authMiddleware.ThenFunc(app.userHandler.LogOut))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.GetMe))
	mux.Put("/user/me", authMiddleware.ThenFunc(app.userHandler.UpdateProfile))
	mux.Put("/user/password", authMiddleware.ThenFunc(app.userHandler.UpdatePassword))
	mux.Post("/user/avatar", authMiddleware.ThenFunc(app.userHandler.UploadAvatar))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Get("/freelancers", authMiddleware.ThenFunc(app.userHandler.ListFreelancers))
	mux.Post("/user/device_token", authMiddleware.ThenFunc(app.userHandler.RegisterDeviceToken))

	// Projects
	mux.Post("/project", clientMiddleware.ThenFunc(app.projectHandler.CreateProject))
	mux.Get("/project/get", authMiddleware.ThenFunc(app.projectHandler.GetProjects))
	mux.Get("/project/mine", authMiddleware.ThenFunc(app.projectHandler.GetMyProjects))
	mux.Get("/project/:id", authMiddleware.ThenFunc(app.projectHandler.GetProjectByID))
	mux.Put("/project/:id", clientMiddleware.ThenFunc(app.projectHandler.UpdateProject))
	mux.Post("/project/:id/complete", clientMiddleware.ThenFunc(app.projectHandler.CompleteProject))
	mux.Del("/project/:id", clientMiddleware.ThenFunc(app.projectHandler.DeleteProject))

	// Proposals
	mux.Post("/proposal", freelancerMiddleware.ThenFunc(app.proposalHandler.SubmitProposal))
	mux.Get("/proposal/mine", freelancerMiddleware.ThenFunc(app.proposalHandler.GetMyProposals))
	mux.Get("/proposal/project/:project_id", clientMiddleware.ThenFunc(app.proposalHandler.GetProposalsByProjectID))
	mux.Post("/proposal/:id/accept", clientMiddleware.ThenFunc(app.proposalHandler.AcceptProposal))
	mux.Post("/proposal/:id/reject", clientMiddleware.ThenFunc(app.proposalHandler.RejectProposal))

	// Milestones
	mux.Post("/milestone", clientMiddleware.ThenFunc(app.milestoneHandler.CreateMilestone))
	mux.Get("/milestone/project/:project_id", authMiddleware.ThenFunc(app.milestoneHandler.GetMilestonesByProjectID))
	mux.Get("/milestone/:id", authMiddleware.ThenFunc(app.milestoneHandler.GetMilestoneByID))
	mux.Post("/milestone/:id/submit", freelancerMiddleware.ThenFunc(app.milestoneHandler.SubmitMilestone))
	mux.Post("/milestone/:id/reject", clientMiddleware.ThenFunc(app.milestoneHandler.RejectMilestone))

	// Payments
	mux.Post("/payment/checkout", clientMiddleware.ThenFunc(app.paymentHandler.IssuePayment))
	mux.Get("/payment/verify/:project_id", authMiddleware.ThenFunc(app.paymentHandler.VerifyPayment))
	mux.Post("/payment/webhook", standardMiddleware.ThenFunc(app.paymentHandler.Webhook))

	// Escrow
	mux.Post("/escrow/release", clientMiddleware.ThenFunc(app.escrowHandler.ReleaseEscrow))
	mux.Get("/escrow/history", freelancerMiddleware.ThenFunc(app.escrowHandler.GetMyHistory))
	mux.Get("/escrow/project/:project_id", authMiddleware.ThenFunc(app.escrowHandler.GetProjectHistory))

	// Balance and payouts
	mux.Get("/balance", freelancerMiddleware.ThenFunc(app.payoutHandler.GetBalance))
	mux.Post("/payout", freelancerMiddleware.ThenFunc(app.payoutHandler.RequestPayout))
	mux.Get("/payout/history", freelancerMiddleware.ThenFunc(app.payoutHandler.GetPayoutHistory))
	mux.Post("/payout/:id/complete", adminMiddleware.ThenFunc(app.payoutHandler.CompletePayout))
	mux.Post("/payout/:id/reject", adminMiddleware.ThenFunc(app.payoutHandler.RejectPayout))

	// Chat
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))
	mux.Post("/message", authMiddleware.ThenFunc(app.messageHandler.SendMessage))
	mux.Get("/message/project/:project_id", authMiddleware.ThenFunc(app.messageHandler.GetMessagesByProjectID))
	mux.Post("/message/project/:project_id/read", authMiddleware.ThenFunc(app.messageHandler.MarkRead))
	mux.Get("/conversations", authMiddleware.ThenFunc(app.messageHandler.GetConversations))

	return standardMiddleware.Then(mux)
}
