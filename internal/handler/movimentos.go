package handler

import (
	"net/http"

	"github.com/JPEDROPS092/sistemadecadastro/internal/apierror"
	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovimentosHandler struct{ svc service.MovimentoService }

func NewMovimentosHandler(svc service.MovimentoService) *MovimentosHandler {
	return &MovimentosHandler{svc: svc}
}

// RegistrarEntrada godoc
// @Summary Registra uma entrada de estoque (compra/reposição)
// @Tags movimentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarMovimentoRequest true "Dados do movimento"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/movimentos/entrada [post]
func (h *MovimentosHandler) RegistrarEntrada(c *gin.Context) {
	var req dto.RegistrarMovimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarSaida godoc
// @Summary Registra uma saída de estoque (venda/baixa)
// @Tags movimentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarMovimentoRequest true "Dados do movimento"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 409 {object} apierror.APIError "Estoque insuficiente"
// @Router /v1/movimentos/saida [post]
func (h *MovimentosHandler) RegistrarSaida(c *gin.Context) {
	var req dto.RegistrarMovimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarSaida(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AjustarEstoque godoc
// @Summary Ajusta o estoque de um produto via movimento de correção
// @Tags movimentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AjustarEstoqueRequest true "Delta e motivo"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 409 {object} apierror.APIError "Estoque insuficiente"
// @Router /v1/produtos/{id}/ajustar-estoque [post]
func (h *MovimentosHandler) AjustarEstoque(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req.Delta, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista movimentos de estoque com filtros
// @Tags movimentos
// @Produce json
// @Security BearerAuth
// @Param produto_id query string false "Filtra por produto"
// @Param tipo query string false "entrada ou saida"
// @Param data_inicio query string false "RFC3339 ou AAAA-MM-DD"
// @Param data_fim query string false "RFC3339 ou AAAA-MM-DD"
// @Success 200 {object} dto.MovimentoListResponse
// @Router /v1/movimentos [get]
func (h *MovimentosHandler) Listar(c *gin.Context) {
	filter := dto.MovimentoFilter{
		DataInicio: queryTime(c, "data_inicio"),
		DataFim:    queryTime(c, "data_fim"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 100),
	}
	if raw := c.Query("produto_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("produto_id inválido"))
			return
		}
		filter.ProdutoID = &id
	}
	if tipo := c.Query("tipo"); tipo != "" {
		if tipo != model.TipoEntrada && tipo != model.TipoSaida {
			c.JSON(http.StatusBadRequest, apierror.New("tipo deve ser entrada ou saida"))
			return
		}
		filter.Tipo = tipo
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
