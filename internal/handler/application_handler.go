package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/memberdesk/internal/application"
	"github.com/hitoshi/memberdesk/internal/model"
)

// ApplicationServiceInterface は入会申請ハンドラーが必要とするサービスインターフェース。
type ApplicationServiceInterface interface {
	Submit(ctx context.Context, input application.SubmitInput) (*model.MembershipApplication, error)
	List(ctx context.Context) ([]*model.MembershipApplication, error)
	Approve(ctx context.Context, id int64) error
	Deny(ctx context.Context, id int64) error
}

// ApplicationMetrics は申請の受付と判定をメトリクスに記録するインターフェース。
type ApplicationMetrics interface {
	RecordApplicationSubmitted()
	RecordApplicationDecision(status string)
}

// ApplicationHandler は入会申請管理のHTTPハンドラー。
type ApplicationHandler struct {
	service ApplicationServiceInterface
	metrics ApplicationMetrics // nilの場合は記録をスキップ
}

// NewApplicationHandler はApplicationHandlerを生成する。
func NewApplicationHandler(service ApplicationServiceInterface, metrics ApplicationMetrics) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		metrics: metrics,
	}
}

// submitApplicationRequest は入会申請リクエストのボディ。
// フィールド名は申請フォームの命名（camelCase）に合わせる。
type submitApplicationRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergencyContact"`
	MembershipFee    string `json:"membershipFee"`
}

// applicationResponse は入会申請のAPIレスポンス。
type applicationResponse struct {
	ID               int64  `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergency_contact"`
	MembershipFee    string `json:"membership_fee"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// Submit は入会申請の受付を処理する。
// POST /submit-application
// JSONボディとフォームエンコードの両方を受け付ける。
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, err := parseSubmitRequest(r)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	app, err := h.service.Submit(r.Context(), application.SubmitInput{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		EmergencyContact: req.EmergencyContact,
		MembershipFee:    req.MembershipFee,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordApplicationSubmitted()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toApplicationResponse(app))
}

// List は全申請の一覧を返す。
// GET /get-applications
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, toApplicationResponse(app))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Approve は申請を承認する。
// POST /approve-application/{id}
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.StatusApproved)
}

// Deny は申請を却下する。
// POST /deny-application/{id}
func (h *ApplicationHandler) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, model.StatusDenied)
}

// decide は承認・却下の共通処理。
func (h *ApplicationHandler) decide(w http.ResponseWriter, r *http.Request, status model.ApplicationStatus) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	switch status {
	case model.StatusApproved:
		err = h.service.Approve(r.Context(), id)
	case model.StatusDenied:
		err = h.service.Deny(r.Context(), id)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordApplicationDecision(string(status))
	}

	w.WriteHeader(http.StatusOK)
}

// parseSubmitRequest はJSONまたはフォームエンコードの申請リクエストを解析する。
func parseSubmitRequest(r *http.Request) (*submitApplicationRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req submitApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &submitApplicationRequest{
		FullName:         r.PostFormValue("fullName"),
		Email:            r.PostFormValue("email"),
		Phone:            r.PostFormValue("phone"),
		EmergencyContact: r.PostFormValue("emergencyContact"),
		MembershipFee:    r.PostFormValue("membershipFee"),
	}, nil
}

// --- ヘルパー関数 ---

// toApplicationResponse はmodel.MembershipApplicationからAPIレスポンスに変換する。
func toApplicationResponse(app *model.MembershipApplication) applicationResponse {
	return applicationResponse{
		ID:               app.ID,
		FullName:         app.FullName,
		Email:            app.Email,
		Phone:            app.Phone,
		EmergencyContact: app.EmergencyContact,
		MembershipFee:    app.MembershipFee,
		Status:           string(app.Status),
		CreatedAt:        app.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeApplicationNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
