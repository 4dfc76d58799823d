package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, membership, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeApplicationNotFound = "APPLICATION_NOT_FOUND"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// ユーザー名不在とパスワード不一致は区別せず、同一のエラーを返す。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewApplicationNotFoundError は申請未検出エラーを生成する。
func NewApplicationNotFoundError(applicationID int64) *APIError {
	return &APIError{
		Code:     ErrCodeApplicationNotFound,
		Message:  fmt.Sprintf("指定された入会申請が見つかりません: %d", applicationID),
		Category: "membership",
		Action:   "申請IDを確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewInvalidRequestError はリクエスト解析失敗エラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しい形式でリクエストしてください。",
	}
}

// NewInternalError は内部エラーの統一レスポンスを生成する。
// 詳細はログのみに記録し、会員・管理者には一般的な案内のみを返す。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "時間をおいて再度お試しください。解決しない場合は事務局までお問い合わせください。",
	}
}

// NewInvalidStatusError は無効な審査ステータスエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("無効な審査ステータスです: %s", status),
		Category: "validation",
		Action:   "ステータスには pending、approved、denied のいずれかを指定してください。",
	}
}
