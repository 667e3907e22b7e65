package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/logging"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

// maxFormBytes bounds a submitted entity form.
const maxFormBytes = 64 << 10

// formMode distinguishes the create and edit variants of an entity form.
type formMode struct {
	heading string
	action  string
	submit  string
}

func createMode(def core.EntityDefinition) formMode {
	return formMode{
		heading: "Create",
		action:  def.Info.ListPath() + "/create",
		submit:  "Create " + def.Info.Singular,
	}
}

func editMode(def core.EntityDefinition, id string) formMode {
	return formMode{
		heading: "Edit",
		action:  def.Info.ListPath() + "/" + id + "/edit",
		submit:  "Edit " + def.Info.Singular,
	}
}

// handleCreateForm renders an empty create form.
func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	s.renderForm(w, r, def, createMode(def), map[string]string{}, core.FormState{})
}

// handleEditForm renders the edit form filled with the stored row.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	values, err := s.storedValues(r.Context(), def, id)
	if err != nil {
		s.handleError(w, r, def, err)
		return
	}
	s.renderForm(w, r, def, editMode(def, id), values, core.FormState{})
}

// handleCreate validates and inserts a submitted form.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	form, err := readForm(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	state, err := s.service.Create(r.Context(), def.Info.Key, form)
	if err != nil {
		s.handleError(w, r, def, err)
		return
	}
	if state.Redirect != "" {
		http.Redirect(w, r, state.Redirect, http.StatusSeeOther)
		return
	}
	s.renderForm(w, r, def, createMode(def), state.Values, state)
}

// handleUpdate validates and applies a submitted edit form.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	form, err := readForm(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	state, err := s.service.Update(r.Context(), def.Info.Key, id, form)
	if err != nil {
		s.handleError(w, r, def, err)
		return
	}
	if state.Redirect != "" {
		http.Redirect(w, r, state.Redirect, http.StatusSeeOther)
		return
	}

	values := state.Values
	if state.Success {
		// Staying on the form: show what is stored now.
		values, err = s.storedValues(r.Context(), def, id)
		if err != nil {
			s.handleError(w, r, def, err)
			return
		}
	}
	s.renderForm(w, r, def, editMode(def, id), values, state)
}

// handleDelete deletes a row and returns to the listing it was confirmed on.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	def, ok := s.entityDefinition(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if _, err := readForm(w, r); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	target := safeReturn(def, r.PostFormValue("return"))

	if err := s.service.Delete(r.Context(), def.Info.Key, id); err != nil {
		http.Redirect(w, r, withNotice(target, noticeDeleteFailed), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// readForm parses a URL-encoded body into a flat field map.
func readForm(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	form := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		form[name] = r.PostForm.Get(name)
	}
	return form, nil
}

// storedValues loads a row as form values. Amounts are shown in dollars.
func (s *Server) storedValues(ctx context.Context, def core.EntityDefinition, id string) (map[string]string, error) {
	row, err := s.service.Get(ctx, def.Info.Key, id)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(def.FieldSpecs))
	for _, spec := range def.FieldSpecs {
		v := row[spec.Column()]
		if spec.Type == core.FieldAmount {
			v = core.CentsToDollars(v)
		}
		values[spec.Name] = v
	}
	return values, nil
}

// renderForm renders an entity form with values and the submission state.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, def core.EntityDefinition, mode formMode, values map[string]string, state core.FormState) {
	fields, err := s.formFields(r.Context(), def, values, state.FieldErrors)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.render(w, r, http.StatusOK, templates.FormPage(templates.FormView{
		Page:        s.page(mode.heading+" "+def.Info.Singular, def.Info.ListPath()),
		Label:       def.Info.Label,
		Heading:     mode.heading + " " + def.Info.Singular,
		Action:      mode.action,
		CancelPath:  def.Info.ListPath(),
		SubmitLabel: mode.submit,
		Fields:      fields,
		Message:     state.Message,
		Success:     state.Success,
	}))
}

// formFields builds the widgets of an entity form.
func (s *Server) formFields(ctx context.Context, def core.EntityDefinition, values map[string]string, fieldErrors map[string][]string) ([]templates.FormField, error) {
	fields := make([]templates.FormField, 0, len(def.FieldSpecs))
	for _, spec := range def.FieldSpecs {
		value := values[spec.Name]
		f := templates.FormField{
			ID:        spec.Name,
			Name:      spec.Name,
			Label:     spec.Label,
			Widget:    "input",
			InputType: "text",
			Value:     value,
			Errors:    fieldErrors[spec.Name],
		}

		switch {
		case spec.Options != "":
			choices, err := s.optionChoices(ctx, spec, values, value)
			if err != nil {
				return nil, err
			}
			f.Widget = "select"
			f.Choices = choices
			f.Placeholder = "Select a " + strings.ToLower(spec.Label)
			if spec.DependsOn != "" {
				f.DependsOn = spec.DependsOn
				f.LookupURL = "/api/" + spec.Options + "/"
			}
		case spec.Type == core.FieldEnum:
			f.Widget = "select"
			if spec.Input == "radio" {
				f.Widget = "radio"
			}
			f.Placeholder = "Select a status"
			for _, v := range spec.EnumValues {
				label := v
				if l, ok := spec.EnumLabels[v]; ok {
					label = l
				}
				f.Choices = append(f.Choices, templates.Choice{Value: v, Label: label, Selected: v == value})
			}
		case spec.Input == "textarea":
			f.Widget = "textarea"
		case spec.Type == core.FieldEmail:
			f.InputType = "email"
		case spec.Type == core.FieldURL:
			f.InputType = "url"
		case spec.Type == core.FieldAmount:
			f.InputType = "number"
			f.Step = "0.01"
			f.Placeholder = "Enter USD amount"
		case spec.Type == core.FieldPrice:
			f.InputType = "number"
			f.Step = "0.01"
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// optionChoices loads the select entries for a reference field. A dependent
// field only offers rows matching the current value of its parent field.
func (s *Server) optionChoices(ctx context.Context, spec core.FieldSpec, values map[string]string, selected string) ([]templates.Choice, error) {
	var choices []templates.Choice

	if spec.DependsOn != "" {
		parent := values[spec.DependsOn]
		if parent == "" {
			return nil, nil
		}
		items, err := s.service.Lookup(ctx, spec.Options, spec.DependsOn, parent)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			choices = append(choices, templates.Choice{Value: item.ID, Label: item.Name, Selected: item.ID == selected})
		}
		return choices, nil
	}

	opts, err := s.service.Options(ctx, spec.Options)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		choices = append(choices, templates.Choice{Value: opt.Value, Label: opt.Label, Selected: opt.Value == selected})
	}
	logging.FromContext(ctx).Debug("options loaded", "entity", spec.Options, "count", len(choices))
	return choices, nil
}
