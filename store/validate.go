package store

import (
	goerrors "errors"

	"github.com/go-playground/validator/v10"

	"chat-secure/domain"
	"chat-secure/errors"
)

var validate = validator.New()

type createConversationRequest struct {
	Participants []domain.User `validate:"required,min=2"`
	Name         string        `validate:"max=120"`
}

func validateCreate(participants []domain.User, isGroup bool, name string) error {
	req := createConversationRequest{Participants: participants, Name: name}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if goerrors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() == "Participants" {
					return errors.ErrNotEnoughParticipants
				}
			}
		}
		return err
	}
	if isGroup && name == "" {
		return errors.ErrGroupNameRequired
	}
	return nil
}
