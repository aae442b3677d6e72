package services

import (
	"context"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

type ContactService struct {
	logger       *gecho.Logger
	db           *database.DB
	emailService *EmailService
}

func NewContactService(logger *gecho.Logger, db *database.DB, emailService *EmailService) *ContactService {
	return &ContactService{
		logger:       logger,
		db:           db,
		emailService: emailService,
	}
}

// Submit stores a contact message and notifies the admin inbox
// best-effort.
func (cs *ContactService) Submit(ctx context.Context, req *structs.ContactRequest) (*tables.ContactMessage, error) {
	message := &tables.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	_, err := cs.db.NewInsert().Model(message).Returning("*").Exec(ctx)
	if err != nil {
		cs.logger.Error("Failed to store contact message", gecho.Field("error", err), gecho.Field("email", req.Email))
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	go cs.emailService.SendContactNotification(message)

	return message, nil
}

// ListAll returns every contact message, newest first.
func (cs *ContactService) ListAll(ctx context.Context) ([]tables.ContactMessage, error) {
	var messages []tables.ContactMessage
	err := cs.db.NewSelect().
		Model(&messages).
		Order("cm.created_at DESC").
		Scan(ctx)
	if err != nil {
		cs.logger.Error("Failed to list contact messages", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	if messages == nil {
		messages = []tables.ContactMessage{}
	}
	return messages, nil
}

// Delete removes one contact message.
func (cs *ContactService) Delete(ctx context.Context, messageID uuid.UUID) error {
	res, err := cs.db.NewDelete().
		Model((*tables.ContactMessage)(nil)).
		Where("id = ?", messageID).
		Exec(ctx)
	if err != nil {
		cs.logger.Error("Failed to delete contact message", gecho.Field("error", err), gecho.Field("message_id", messageID))
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.NotFound("contact message not found")
	}
	return nil
}
