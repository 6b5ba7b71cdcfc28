package httperr

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
)

// Audience decide quanto do conflito é revelado.
type Audience int

const (
	Public Audience = iota
	Staff
)

var validationMessages = map[string]string{
	domain.CodeMissingField:  "Campo obrigatório não informado.",
	domain.CodeNotFound:      "Registro não encontrado.",
	domain.CodePastDate:      "Não é possível agendar no passado.",
	domain.CodeInvalidFormat: "Formato inválido.",
}

// FromError traduz erros de domínio em respostas HTTP:
// validação 400 (not_found 404), conflito e transição 409, infraestrutura 503.
func FromError(c *gin.Context, err error, audience Audience, loc *time.Location) {
	var (
		ve *domain.ValidationError
		ce *domain.ConflictError
		se *domain.StateError
		ie *domain.InfrastructureError
	)

	switch {
	case errors.As(err, &ve):
		status := http.StatusBadRequest
		if ve.Code == domain.CodeNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, HTTPError{
			Code:    ve.Code,
			Message: validationMessages[ve.Code],
			Field:   ve.Field,
		})

	case errors.As(err, &ce):
		if audience == Public {
			Write(c, http.StatusConflict, ce.Code(), ce.PublicMessage())
			return
		}
		if loc == nil {
			loc = time.UTC
		}
		c.JSON(http.StatusConflict, HTTPError{
			Code:    ce.Code(),
			Message: ce.StaffMessage(loc),
			Conflict: &ConflictDetail{
				BookingID:  ce.BookingID,
				Start:      ce.Start.In(loc).Format(time.RFC3339),
				End:        ce.End.In(loc).Format(time.RFC3339),
				ClientName: ce.ClientName,
			},
		})

	case errors.As(err, &se):
		Write(c, http.StatusConflict, se.Code(), "Operação não permitida para o status atual.")

	case errors.As(err, &ie):
		Write(c, http.StatusServiceUnavailable, "unavailable", "Serviço temporariamente indisponível. Tente novamente.")

	default:
		Internal(c, "internal_error", "Erro interno.")
	}
}
