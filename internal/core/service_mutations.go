package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/storeadmin/internal/logging"
)

// FormState is the outcome of a create or update submission.
type FormState struct {
	Success     bool
	Message     string
	FieldErrors map[string][]string
	Values      map[string]string // Submitted input, echoed back on failure
	Redirect    string            // Set when the caller should navigate away
}

// echoValues copies the submitted values of the definition's fields.
func echoValues(def EntityDefinition, form map[string]string) map[string]string {
	values := make(map[string]string, len(def.FieldSpecs))
	for _, spec := range def.FieldSpecs {
		if v, ok := form[spec.Name]; ok {
			values[spec.Name] = v
		}
	}
	return values
}

// failed builds the state returned when validation or the store rejects input.
func failed(def EntityDefinition, form map[string]string, msg string, fieldErrors map[string][]string) FormState {
	return FormState{
		Message:     msg,
		FieldErrors: fieldErrors,
		Values:      echoValues(def, form),
	}
}

// storeMessage returns the text shown to the user for a store failure.
func storeMessage(err error) string {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return dbErr.Error()
	}
	return MapError(err).Message
}

// Create validates form and inserts a new row.
// Returns an error only for an unknown entity; everything else is in FormState.
func (s *Service) Create(ctx context.Context, entity string, form map[string]string) (FormState, error) {
	def, err := MustGet(entity)
	if err != nil {
		return FormState{}, err
	}
	logger := logging.WithFields(ctx, mutationFields(ctx, entity, "create")...)

	result := Validate(def.FieldSpecs, form)
	if !result.Valid {
		logger.Debug("validation failed", "fields", len(result.FieldErrors))
		return failed(def, form, result.Message, result.FieldErrors), nil
	}

	rec := result.Data
	if def.BeforeInsert != nil {
		def.BeforeInsert(&rec, InsertEnv{Now: s.now()})
	}

	row, err := s.store.Insert(ctx, def, rec)
	if err != nil {
		logger.Error("insert failed", "error", err, "detail", ErrorDetail(err))
		return failed(def, form, storeMessage(err), nil), nil
	}

	s.invalidate(entity)
	logger.Info("record created", "id", row.ID())

	return FormState{
		Success:  true,
		Message:  fmt.Sprintf("%s created successfully", def.Info.Singular),
		Redirect: def.Info.ListPath(),
	}, nil
}

// Update validates form and overwrites the row identified by id.
// Returns ErrNotFound when no row was updated.
func (s *Service) Update(ctx context.Context, entity, id string, form map[string]string) (FormState, error) {
	def, err := MustGet(entity)
	if err != nil {
		return FormState{}, err
	}
	logger := logging.WithFields(ctx, mutationFields(ctx, entity, "update")...).With("id", id)

	result := Validate(def.FieldSpecs, form)
	if !result.Valid {
		logger.Debug("validation failed", "fields", len(result.FieldErrors))
		return failed(def, form, result.Message, result.FieldErrors), nil
	}

	n, err := s.store.Update(ctx, def, id, result.Data)
	if err != nil {
		logger.Error("update failed", "error", err, "detail", ErrorDetail(err))
		return failed(def, form, storeMessage(err), nil), nil
	}
	if n == 0 {
		return FormState{}, ErrNotFound
	}

	s.invalidate(entity)
	logger.Info("record updated")

	state := FormState{
		Success: true,
		Message: fmt.Sprintf("%s updated successfully", def.Info.Singular),
	}
	if !def.StayOnUpdate {
		state.Redirect = def.Info.ListPath()
	}
	return state, nil
}

// Delete removes the row identified by id. Deleting a missing row succeeds.
// Cached listings are dropped only when the store accepted the delete.
func (s *Service) Delete(ctx context.Context, entity, id string) error {
	def, err := MustGet(entity)
	if err != nil {
		return err
	}
	logger := logging.WithFields(ctx, mutationFields(ctx, entity, "delete")...).With("id", id)

	if err := s.store.Delete(ctx, def, id); err != nil {
		logger.Error("delete failed", "error", err, "detail", ErrorDetail(err))
		return err
	}

	s.invalidate(entity)
	logger.Info("record deleted")
	return nil
}

// invalidate drops the cached listings of entity and of every listing that
// shows its columns.
func (s *Service) invalidate(entity string) {
	s.cache.Invalidate(entity)
	for _, key := range Dependents(entity) {
		s.cache.Invalidate(key)
	}
}

// ErrorDetail returns the underlying cause of a *DatabaseError, or "".
func ErrorDetail(err error) string {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return dbErr.Detail()
	}
	return ""
}
