package handler

import (
	"net/http"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/apierror"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Dashboard godoc
// @Summary Indicadores consolidados do dia
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/relatorios/dashboard [get]
func (h *RelatoriosHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estoque godoc
// @Summary Valorização do estoque ativo
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RelatorioEstoqueResponse
// @Router /v1/relatorios/estoque [get]
func (h *RelatoriosHandler) Estoque(c *gin.Context) {
	resp, err := h.svc.Estoque(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos godoc
// @Summary Agrega movimentos de estoque por período (padrão: hoje)
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param periodo query string false "Preset: dia, semana ou mes (ignora as datas)"
// @Param data_inicio query string false "RFC3339 ou AAAA-MM-DD"
// @Param data_fim query string false "RFC3339 ou AAAA-MM-DD"
// @Success 200 {object} dto.RelatorioMovimentosResponse
// @Router /v1/relatorios/movimentos [get]
func (h *RelatoriosHandler) Movimentos(c *gin.Context) {
	inicio := queryTime(c, "data_inicio")
	fim := queryTime(c, "data_fim")
	if ini, f, ok := service.JanelaPeriodo(c.Query("periodo"), time.Now()); ok {
		inicio, fim = &ini, &f
	}
	resp, err := h.svc.Movimentos(c.Request.Context(), inicio, fim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FluxoDiario godoc
// @Summary Fluxo combinado de estoque e caixa de um dia
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data query string false "AAAA-MM-DD (padrão: hoje)"
// @Success 200 {object} dto.FluxoDiarioResponse
// @Router /v1/relatorios/fluxo-diario [get]
func (h *RelatoriosHandler) FluxoDiario(c *gin.Context) {
	dia := time.Now().UTC()
	if t := queryTime(c, "data"); t != nil {
		dia = *t
	}
	resp, err := h.svc.FluxoDiario(c.Request.Context(), dia)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Caixa godoc
// @Summary Relatório de uma sessão de caixa (padrão: sessão aberta)
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param id query string false "ID da sessão"
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/relatorios/caixa [get]
func (h *RelatoriosHandler) Caixa(c *gin.Context) {
	var id *uuid.UUID
	if raw := c.Query("id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
			return
		}
		id = &parsed
	}
	resp, err := h.svc.Caixa(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
