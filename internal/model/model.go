package model

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CaregiverLoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type CaregiverLoginResponse struct {
	Token     string     `json:"token"`
	Caregiver *Caregiver `json:"caregiver"`
}

type CreateCaregiverRequest struct {
	Name            string `json:"name" binding:"required"`
	Username        string `json:"username"`
	CareRecipientID string `json:"care_recipient_id" binding:"required"`
}

// CreateCaregiverResponse carries the plaintext PIN exactly once.
type CreateCaregiverResponse struct {
	ID       string `json:"id"`
	PIN      string `json:"pin"`
	Username string `json:"username,omitempty"`
}

type CreateCareRecipientRequest struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
}

type CreateCareLogRequest struct {
	CareRecipientID string `json:"careRecipientId" binding:"required"`
	LogDate         string `json:"logDate"`
}

// CareLogPatch is a partial update: nil fields are left untouched
// server-side. Last write wins; there is no version token.
type CareLogPatch struct {
	WakeTime      *string `json:"wakeTime,omitempty"`
	Mood          *string `json:"mood,omitempty"`
	DinnerTime    *string `json:"dinnerTime,omitempty"`
	BedTime       *string `json:"bedTime,omitempty"`
	DaySummary    *string `json:"daySummary,omitempty"`
	ConcernsNoted *string `json:"concernsNoted,omitempty"`

	Meals        *Meals        `json:"meals,omitempty"`
	NightSleep   *NightSleep   `json:"nightSleep,omitempty"`
	Medications  *[]Medication `json:"medications,omitempty"`
	Vitals       *Vitals       `json:"vitals,omitempty"`
	Toileting    *Toileting    `json:"toileting,omitempty"`
	Falls        *[]FallEvent  `json:"falls,omitempty"`
	SafetyChecks *SafetyChecks `json:"safetyChecks,omitempty"`
	HospitalBag  *HospitalBag  `json:"hospitalBag,omitempty"`
}

type SubmitSectionRequest struct {
	Section string `json:"section" binding:"required"`
}

type CreatePackListRequest struct {
	CareRecipientID string   `json:"care_recipient_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Items           []string `json:"items"`
}

type CreateFamilyMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
}

// Alert is derived externally (fall events, missed medications, vitals
// anomalies) and passed through to dashboard views unmodified.
type Alert struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	CreatedAt string `json:"created_at"`
}

// WeekDay is one point in a 7-day trend series. Log is nil for days
// without a record; consumers render those as absent data, not errors.
type WeekDay struct {
	Date string   `json:"date"`
	Log  *CareLog `json:"log"`
}

type DayView struct {
	CareRecipient        *CareRecipient `json:"careRecipient"`
	TodayLog             *CareLog       `json:"todayLog"`
	CompletionPercentage int            `json:"completionPercentage"`
	ActiveAlerts         []Alert        `json:"activeAlerts"`
}
