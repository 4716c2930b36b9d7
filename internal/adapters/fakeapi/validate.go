package fakeapi

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.trai.ch/smartmate/internal/core/domain"
)

const maxTitleLength = 200

var priorities = []any{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

func validateTaskInput(in *domain.TaskInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Priority, validation.Required, validation.In(priorities...)),
	)
}

func validateTaskPatch(p *domain.TaskPatch) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.Length(1, maxTitleLength)),
		validation.Field(&p.Priority, validation.NilOrNotEmpty, validation.In(priorities...)),
	)
}

func validateUserInput(in *domain.UserInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
	)
}

func validateUserPatch(p *domain.UserPatch) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.NilOrNotEmpty),
		validation.Field(&p.Email, validation.NilOrNotEmpty, is.EmailFormat),
	)
}

// fieldErrors flattens ozzo errors into the wire format. Internal errors
// yield nil.
func fieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}
	return out
}
