package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const maxClientsPage = 200

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// List busca no diretório de clientes do salão por nome, e-mail ou telefone.
// Telefones são gravados só com dígitos, então a busca ignora a máscara.
func (h *ClientHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(maxClientsPage)))
	if limit <= 0 || limit > maxClientsPage {
		limit = maxClientsPage
	}

	q := h.db.Where("salon_id = ?", middleware.SalonID(c))

	if term := strings.ToLower(strings.TrimSpace(c.Query("query"))); term != "" {
		like := "%" + term + "%"
		cond := h.db.Where("LOWER(name) LIKE ?", like).Or("LOWER(email) LIKE ?", like)
		if digits := validators.NormalizePhone(term); digits != "" {
			cond = cond.Or("phone LIKE ?", "%"+digits+"%")
		}
		q = q.Where(cond)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Limit(limit).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}
