package model

import "time"

// ApplicationStatus は入会申請の審査状態を表す。
// 旧実装ではnullableなbooleanで「未審査」と「却下」が同じ値に潰れていたため、
// 明示的な3状態のenumとして定義し直している。
type ApplicationStatus string

const (
	// StatusPending は未審査の申請を示す。新規申請のデフォルト値。
	StatusPending ApplicationStatus = "pending"
	// StatusApproved は承認済みの申請を示す。
	StatusApproved ApplicationStatus = "approved"
	// StatusDenied は却下された申請を示す。
	StatusDenied ApplicationStatus = "denied"
)

// Valid はステータス値が定義済みの3状態のいずれかであるかを返す。
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	default:
		return false
	}
}

// MembershipApplication は入会申請を表す。
// 各フィールドは申請フォームの入力値をそのまま保持する。
// MembershipFeeも送信された文字列を無変換で保持する（数値検証は行わない）。
type MembershipApplication struct {
	ID               int64
	FullName         string
	Email            string
	Phone            string
	EmergencyContact string
	MembershipFee    string
	Status           ApplicationStatus
	CreatedAt        time.Time
}
