package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"
	"github.com/davidsantoszx/gerenciadorsalario/internal/repository"
	"github.com/davidsantoszx/gerenciadorsalario/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PlanHandler serves the plan CRUD API.
type PlanHandler struct {
	Plans *repository.PlanRepository
}

func NewPlanHandler(plans *repository.PlanRepository) *PlanHandler {
	return &PlanHandler{Plans: plans}
}

// ---------- wire types ----------

type linhaReq struct {
	ID        uint            `json:"id"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     json.RawMessage `json:"valor"`
}

type planReq struct {
	Nome   string      `json:"nome"`
	Linhas *[]linhaReq `json:"linhas"`
}

type linhaResp struct {
	ID        uint        `json:"id"`
	Tipo      string      `json:"tipo"`
	Descricao string      `json:"descricao"`
	Valor     json.Number `json:"valor"`
}

type planResp struct {
	ID        uint        `json:"id"`
	Nome      string      `json:"nome"`
	Principal bool        `json:"principal"`
	Linhas    []linhaResp `json:"linhas"`
}

// parseValor accepts the historical wire format for amounts: a JSON
// number or a numeric string.
func parseValor(raw json.RawMessage) (decimal.Decimal, error) {
	var v decimal.Decimal
	if len(raw) == 0 || string(raw) == "null" {
		return v, errors.New("valor ausente")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}

// parseLinhas converts submitted lines, failing on the first unparseable
// valor.
func parseLinhas(linhas []linhaReq) ([]repository.LineInput, error) {
	out := make([]repository.LineInput, 0, len(linhas))
	for _, l := range linhas {
		valor, err := parseValor(l.Valor)
		if err != nil {
			return nil, err
		}
		out = append(out, repository.LineInput{
			ID:        l.ID,
			Tipo:      l.Tipo,
			Descricao: l.Descricao,
			Valor:     valor,
		})
	}
	return out, nil
}

func toPlanResp(p *models.Plan) planResp {
	linhas := make([]linhaResp, 0, len(p.Linhas))
	for _, l := range p.Linhas {
		linhas = append(linhas, linhaResp{
			ID:        l.ID,
			Tipo:      l.Tipo,
			Descricao: l.Descricao,
			Valor:     json.Number(l.Valor.String()),
		})
	}
	return planResp{ID: p.ID, Nome: p.Nome, Principal: p.Principal, Linhas: linhas}
}

func planID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// planError maps repository failures to the API contract: a missing or
// foreign plan is 404, anything else is 500.
func planError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrPlanNotFound) {
		util.Error(c, http.StatusNotFound, "Plano não encontrado ou acesso negado")
		return
	}
	slog.Error("plan operation failed", "error", err, "path", c.Request.URL.Path)
	util.Error(c, http.StatusInternalServerError, "Erro interno do servidor")
}

// ---------- GET /api/planos ----------

func (h *PlanHandler) List(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
		return
	}

	plans, err := h.Plans.ListByOwner(ownerID)
	if err != nil {
		planError(c, err)
		return
	}

	resp := make([]planResp, 0, len(plans))
	for i := range plans {
		resp = append(resp, toPlanResp(&plans[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ---------- POST /criarplano ----------

func (h *PlanHandler) Create(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
		return
	}

	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Dados incompletos")
		return
	}
	if req.Nome == "" || req.Linhas == nil || len(*req.Linhas) == 0 {
		util.Error(c, http.StatusBadRequest, "Dados incompletos")
		return
	}

	linhas, err := parseLinhas(*req.Linhas)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Valor inválido em uma das linhas")
		return
	}

	if _, err := h.Plans.Create(ownerID, req.Nome, linhas); err != nil {
		planError(c, err)
		return
	}
	util.Success(c, http.StatusCreated, "Plano salvo com sucesso!")
}

// ---------- PUT /api/planos/:id ----------

func (h *PlanHandler) Update(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
		return
	}

	id, ok := planID(c)
	if !ok {
		util.Error(c, http.StatusNotFound, "Plano não encontrado ou acesso negado")
		return
	}

	// ownership is checked before the body so a foreign plan id yields
	// 404 even when the payload is also invalid
	if _, err := h.Plans.FindOwned(ownerID, id); err != nil {
		planError(c, err)
		return
	}

	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Dados incompletos")
		return
	}
	if req.Nome == "" || req.Linhas == nil {
		util.Error(c, http.StatusBadRequest, "Dados incompletos")
		return
	}

	linhas, err := parseLinhas(*req.Linhas)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Valor inválido em uma das linhas")
		return
	}

	if err := h.Plans.Update(ownerID, id, req.Nome, linhas); err != nil {
		planError(c, err)
		return
	}
	util.Success(c, http.StatusOK, "Plano atualizado com sucesso!")
}

// ---------- DELETE /api/planos/:id ----------

func (h *PlanHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
		return
	}

	id, ok := planID(c)
	if !ok {
		util.Error(c, http.StatusNotFound, "Plano não encontrado ou acesso negado")
		return
	}

	if err := h.Plans.Delete(ownerID, id); err != nil {
		planError(c, err)
		return
	}
	util.Success(c, http.StatusOK, "Plano excluído com sucesso")
}

// ---------- PATCH /api/planos/:id/principal ----------

func (h *PlanHandler) SetPrincipal(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Faça login para salvar seus planos.")
		return
	}

	id, ok := planID(c)
	if !ok {
		util.Error(c, http.StatusNotFound, "Plano não encontrado ou acesso negado")
		return
	}

	if err := h.Plans.SetPrincipal(ownerID, id); err != nil {
		planError(c, err)
		return
	}
	util.Success(c, http.StatusOK, "Plano definido como principal com sucesso!")
}
