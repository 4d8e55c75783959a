package handler

import (
	"net/http"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/middleware"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// Registrar godoc
// @Summary Registra uma venda multi-item (baixa estoque e lança no caixa aberto)
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVendaRequest true "Itens e forma de pagamento"
// @Success 201 {object} dto.VendaResponse
// @Failure 409 {object} apierror.APIError "Estoque insuficiente"
// @Failure 422 {object} apierror.APIError
// @Router /v1/vendas [post]
func (h *VendasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var usuarioID *uuid.UUID
	if uid, err := uuid.Parse(claims.UserID); err == nil {
		usuarioID = &uid
	}
	resp, err := h.svc.RegistrarVenda(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
