package handler

import (
	"net/http"

	"github.com/JPEDROPS092/sistemadecadastro/internal/apierror"
	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um novo produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Dados do produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista produtos com filtro por nome e paginação
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param nome query string false "Filtro por nome (parcial, sem caso)"
// @Param incluir_inativos query bool false "Inclui produtos desativados"
// @Success 200 {object} dto.ProdutoListResponse
// @Router /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	filter := dto.ProdutoFilter{
		Nome:            c.Query("nome"),
		IncluirInativos: c.Query("incluir_inativos") == "true",
		Page:            queryInt(c, "page", 1),
		Limit:           queryInt(c, "limit", 100),
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstoqueBaixo godoc
// @Summary Lista produtos ativos em estoque baixo
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProdutoResponse
// @Router /v1/produtos/estoque-baixo [get]
func (h *ProdutosHandler) EstoqueBaixo(c *gin.Context) {
	resp, err := h.svc.EstoqueBaixo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterPorID godoc
// @Summary Obtém um produto pelo ID
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [get]
func (h *ProdutosHandler) ObterPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza dados cadastrais de um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary Remove um produto (desativa quando há movimentos)
// @Tags produtos
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary Reativa um produto desativado
// @Tags produtos
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id}/reativar [post]
func (h *ProdutosHandler) Reativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
