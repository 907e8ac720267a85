package formapimodels

import (
	"net/mail"
	"time"

	dbmodels "recruit-flow-backend/models/db"

	"github.com/pkg/errors"
)

type FormData struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	IsOpen      bool                `json:"is_open"`
	Fields      []dbmodels.FormField `json:"fields"`
}

func (r FormData) Validate() error {
	if r.Title == "" {
		return errors.New("form title is not specified")
	}
	for _, f := range r.Fields {
		if f.Name == "" {
			return errors.New("form field without a name")
		}
	}
	return nil
}

type FormView struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	LinkToken   string               `json:"link_token"`
	IsOpen      bool                 `json:"is_open"`
	Fields      []dbmodels.FormField `json:"fields"`
	CreatedAt   time.Time            `json:"created_at"`
}

func Convert(rec dbmodels.RecruitmentForm) FormView {
	return FormView{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		LinkToken:   rec.LinkToken,
		IsOpen:      rec.IsOpen,
		Fields:      rec.Fields.Fields,
		CreatedAt:   rec.CreatedAt,
	}
}

// PublicFormView is served on the apply link, internal ids stripped.
type PublicFormView struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Fields      []dbmodels.FormField `json:"fields"`
}

func PublicConvert(rec dbmodels.RecruitmentForm) PublicFormView {
	return PublicFormView{
		Title:       rec.Title,
		Description: rec.Description,
		Fields:      rec.Fields.Fields,
	}
}

type ApplyRequest struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Values    map[string]string `json:"values"`
}

func (r ApplyRequest) Validate() error {
	if r.FirstName == "" {
		return errors.New("first name is not specified")
	}
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("email has a wrong format")
	}
	return nil
}
