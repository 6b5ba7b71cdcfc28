package booking

import (
	"errors"
	"fmt"
	"time"
)

const (
	CodeMissingField      = "missing_field"
	CodeNotFound          = "not_found"
	CodePastDate          = "past_date"
	CodeInvalidFormat     = "invalid_format"
	CodeSlotTaken         = "slot_taken"
	CodeInvalidTransition = "invalid_transition"
)

// Sentinelas devolvidas pelo Repository.
var (
	ErrNotFound = errors.New("booking: record not found")
	ErrStale    = errors.New("booking: status changed concurrently")
)

// ======================================================
// VALIDATION
// ======================================================

type ValidationError struct {
	Code  string
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

func Missing(field string) error {
	return &ValidationError{Code: CodeMissingField, Field: field}
}

func NotFound(field string) error {
	return &ValidationError{Code: CodeNotFound, Field: field}
}

func PastDate() error {
	return &ValidationError{Code: CodePastDate, Field: "start"}
}

func Invalid(field string) error {
	return &ValidationError{Code: CodeInvalidFormat, Field: field}
}

// ======================================================
// CONFLICT
// ======================================================

// ConflictError identifica o agendamento que ocupa o horário pedido.
// ClientName é dado pessoal: só pode chegar ao painel do salão.
type ConflictError struct {
	BookingID  uint
	Start      time.Time
	End        time.Time
	ClientName string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: booking %d (%s - %s)",
		CodeSlotTaken, e.BookingID,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *ConflictError) Code() string { return CodeSlotTaken }

func (e *ConflictError) PublicMessage() string {
	return "Horário indisponível. Escolha outro horário."
}

func (e *ConflictError) StaffMessage(loc *time.Location) string {
	return fmt.Sprintf("Conflito com o agendamento de %s das %s às %s.",
		e.ClientName,
		e.Start.In(loc).Format("15:04"),
		e.End.In(loc).Format("15:04"),
	)
}

// ======================================================
// STATE
// ======================================================

// StateError: transição proibida ou token inválido/expirado.
// To vazio indica operação que não muda o status (remarcação).
type StateError struct {
	From Status
	To   Status
}

func (e *StateError) Error() string {
	switch {
	case e.From == "":
		return CodeInvalidTransition
	case e.To == "":
		return fmt.Sprintf("%s: %s", CodeInvalidTransition, e.From)
	default:
		return fmt.Sprintf("%s: %s -> %s", CodeInvalidTransition, e.From, e.To)
	}
}

func (e *StateError) Code() string { return CodeInvalidTransition }

// ======================================================
// INFRASTRUCTURE
// ======================================================

type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("infrastructure: %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

// Infra embrulha falhas do repositório. Erros de domínio passam intactos.
func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

// ======================================================
// HELPERS
// ======================================================

func IsDomainError(err error) bool {
	var ve *ValidationError
	var ce *ConflictError
	var se *StateError
	var ie *InfrastructureError
	return errors.As(err, &ve) || errors.As(err, &ce) ||
		errors.As(err, &se) || errors.As(err, &ie)
}

func IsValidation(err error, code string) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Code == code
}

func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}
