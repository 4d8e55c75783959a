package handler

import (
	"net/http"

	"github.com/JPEDROPS092/sistemadecadastro/internal/apierror"
	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/middleware"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre uma nova sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError "Já existe caixa aberto"
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var usuarioID *uuid.UUID
	if uid, err := uuid.Parse(claims.UserID); err == nil {
		usuarioID = &uid
	}
	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha uma sessão de caixa e congela o saldo final
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Param body body dto.FecharCaixaRequest true "Observação de fechamento"
// @Success 200 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError "Caixa já fechado"
// @Router /v1/caixa/{id}/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimento godoc
// @Summary Registra uma entrada ou saída manual no caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentoCaixaRequest true "Movimento de caixa"
// @Success 201 {object} dto.MovimentoCaixaResponse
// @Failure 409 {object} apierror.APIError "Caixa não está aberto"
// @Router /v1/caixa/movimento [post]
func (h *CaixaHandler) RegistrarMovimento(c *gin.Context) {
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObterAberto godoc
// @Summary Retorna a sessão de caixa aberta, se houver
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError "Sem caixa aberto"
// @Router /v1/caixa/aberto [get]
func (h *CaixaHandler) ObterAberto(c *gin.Context) {
	resp, err := h.svc.ObterAberto(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sem caixa aberto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Obtém uma sessão de caixa pelo ID, com movimentos
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/{id} [get]
func (h *CaixaHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico godoc
// @Summary Lista sessões de caixa paginadas, mais recentes primeiro
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "RFC3339 ou AAAA-MM-DD"
// @Param data_fim query string false "RFC3339 ou AAAA-MM-DD"
// @Success 200 {object} dto.CaixaListResponse
// @Router /v1/caixa/historico [get]
func (h *CaixaHandler) Historico(c *gin.Context) {
	filter := dto.CaixaFilter{
		DataInicio: queryTime(c, "data_inicio"),
		DataFim:    queryTime(c, "data_fim"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	}
	resp, err := h.svc.Historico(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
