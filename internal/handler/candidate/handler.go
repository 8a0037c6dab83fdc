package candidate

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
	"github.com/zhouzirui/candidate-desk/backend/pkg/utils"
)

const (
	msgNotFound      = "Candidate not found"
	msgInvalidStatus = "Invalid status. Must be: pending, selected, or rejected"
	msgQueryTooShort = "Search query must be at least 2 characters"
	msgInvalidBody   = "Invalid request body"
)

// Handler 候选人接口的HTTP处理器
type Handler struct {
	svc    *candidateService.Service
	logger *zap.Logger
}

// New 创建候选人处理器
func New(svc *candidateService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// RegisterRoutes 在 /candidates 子路由上注册候选人接口
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/stats", h.handleStats)
	r.Get("/search", h.handleSearch)
	r.Get("/{id}", h.handleGet)
	r.Patch("/{id}/status", h.handleUpdateStatus)
}

// handleList 分页列出候选人，支持 status 与 domain 过滤
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query, err := h.svc.ParsePageQuery(r.URL.Query())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.svc.List(r.Context(), query))
}

// handleGet 根据ID获取单个候选人
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondData(w, http.StatusOK, item)
}

// handleUpdateStatus 更新候选人状态
func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Status updated successfully",
		"data":    updated,
	})
}

// handleStats 返回按状态与域名统计的数据
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondData(w, http.StatusOK, h.svc.Stats(r.Context()))
}

// handleSearch 按邮箱或域名搜索候选人
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// respondServiceError 将服务层错误映射为HTTP状态码
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, candidateService.ErrCandidateNotFound):
		utils.RespondError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, candidateService.ErrInvalidStatus):
		utils.RespondError(w, http.StatusBadRequest, msgInvalidStatus)
	case errors.Is(err, candidateService.ErrQueryTooShort):
		utils.RespondError(w, http.StatusBadRequest, msgQueryTooShort)
	default:
		h.logger.Error("candidate request failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Something went wrong on the server")
	}
}
