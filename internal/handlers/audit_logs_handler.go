package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List pagina o histórico do salão, mais recente primeiro.
// from/to são dias no fuso do salão; to é inclusivo.
func (h *AuditLogsHandler) List(c *gin.Context) {
	var salon models.Salon
	if err := h.db.First(&salon, middleware.SalonID(c)).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Model(&models.AuditLog{}).Where("salon_id = ?", salon.ID)

	// --------------------------------------------------
	// Filtros
	// --------------------------------------------------
	entityID, ok := uintQuery(c, "entity_id")
	if !ok {
		return
	}
	if entityID != 0 {
		q = q.Where("entity_id = ?", entityID)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := parseDateInSalon(&salon, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida (YYYY-MM-DD).")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDateInSalon(&salon, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida (YYYY-MM-DD).")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
