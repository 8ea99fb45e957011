package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateGroupRequest struct {
	FestivalID string `json:"festivalId"`
	Name       string `json:"name"`
}

func (req *CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FestivalID, validation.Required, is.UUID),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type JoinGroupRequest struct {
	InviteToken string `json:"inviteToken"`
}

func (req *JoinGroupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InviteToken, validation.Required, is.UUID),
	)
}
