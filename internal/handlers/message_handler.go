package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"freelanceBack/internal/models"
	"freelanceBack/internal/services"
)

type MessageHandler struct {
	Service *services.MessageService
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var m models.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if m.ProjectID == "" || m.ReceiverID == "" || m.Content == "" {
		http.Error(w, "project_id, receiver_id and content are required", http.StatusBadRequest)
		return
	}
	m.SenderID = callerID(r)

	created, err := h.Service.SendMessage(r.Context(), m)
	if err != nil {
		log.Printf("SendMessage error: %v", err)
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *MessageHandler) GetMessagesByProjectID(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")
	messages, err := h.Service.GetMessagesForProject(r.Context(), projectID, callerID(r))
	if err != nil {
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get(":project_id")
	if err := h.Service.MarkRead(r.Context(), projectID, callerID(r)); err != nil {
		http.Error(w, "Failed to mark messages read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MessageHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.Service.GetConversations(r.Context(), callerID(r))
	if err != nil {
		http.Error(w, "Failed to get conversations", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(conversations)
}
