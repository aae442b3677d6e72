package contact

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anritvox/backend-anritvox/handling"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
)

func (crm *ContactRoutesManager) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ContactRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		handling.WriteValidationError(w, err)
		return
	}

	message, err := crm.contactService.Submit(r.Context(), body)
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.contact.submitted"),
		gecho.WithData(map[string]any{"id": message.ID}),
		gecho.Send(),
	)
}

func (crm *ContactRoutesManager) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := crm.contactService.ListAll(r.Context())
	if err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"messages": messages,
			"count":    len(messages),
		}),
		gecho.Send(),
	)
}

func (crm *ContactRoutesManager) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.contact.invalidMessageId"), gecho.Send())
		return
	}

	if err := crm.contactService.Delete(r.Context(), messageID); err != nil {
		handling.WriteError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.contact.deleted"),
		gecho.Send(),
	)
}
