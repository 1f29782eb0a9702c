package model

import "time"

// User is a family account (admin or member) identified by email.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string    `gorm:"uniqueIndex;type:varchar(255)" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Caregiver logs in with a 6-digit PIN. Only the bcrypt hash is stored;
// the plaintext PIN is returned once at creation time.
type Caregiver struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username        string    `gorm:"index;type:varchar(64)" json:"username,omitempty"`
	PINHash         string    `json:"-"`
	Name            string    `json:"name"`
	CareRecipientID string    `gorm:"type:varchar(36);index" json:"care_recipient_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type CareRecipient struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `json:"name"`
	DateOfBirth string    `gorm:"type:date" json:"date_of_birth,omitempty"`
	OwnerUserID string    `gorm:"type:varchar(36);index" json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FamilyMember struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerUserID  string    `gorm:"type:varchar(36);index" json:"owner_user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MealEntry describes one meal. AmountEaten is free text ("all", "half").
type MealEntry struct {
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	AmountEaten string `json:"amountEaten,omitempty"`
}

type Meals struct {
	Breakfast *MealEntry  `json:"breakfast,omitempty"`
	Lunch     *MealEntry  `json:"lunch,omitempty"`
	Dinner    *MealEntry  `json:"dinner,omitempty"`
	Snacks    []MealEntry `json:"snacks,omitempty"`
}

type NightSleep struct {
	Quality string `json:"quality,omitempty"`
	WakeUps int    `json:"wakeUps,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type Medication struct {
	Name  string `json:"name"`
	Dose  string `json:"dose,omitempty"`
	Time  string `json:"time,omitempty"`
	Given bool   `json:"given"`
}

type Vitals struct {
	Temperature float64 `json:"temperature,omitempty"`
	SystolicBP  int     `json:"systolicBP,omitempty"`
	DiastolicBP int     `json:"diastolicBP,omitempty"`
	HeartRate   int     `json:"heartRate,omitempty"`
	OxygenSat   int     `json:"oxygenSat,omitempty"`
	RecordedAt  string  `json:"recordedAt,omitempty"`
}

type Toileting struct {
	BowelMovements  int    `json:"bowelMovements,omitempty"`
	UrinationNormal bool   `json:"urinationNormal"`
	Incontinence    bool   `json:"incontinence"`
	Notes           string `json:"notes,omitempty"`
}

type FallEvent struct {
	OccurredAt  string `json:"occurredAt,omitempty"`
	Location    string `json:"location,omitempty"`
	Injured     bool   `json:"injured"`
	Description string `json:"description,omitempty"`
}

type SafetyChecks struct {
	DoorsLocked   bool   `json:"doorsLocked"`
	StoveOff      bool   `json:"stoveOff"`
	PathwaysClear bool   `json:"pathwaysClear"`
	MedsSecured   bool   `json:"medsSecured"`
	CheckedAt     string `json:"checkedAt,omitempty"`
}

type HospitalBag struct {
	Ready        bool     `json:"ready"`
	MissingItems []string `json:"missingItems,omitempty"`
	CheckedAt    string   `json:"checkedAt,omitempty"`
}

// SectionSubmission records who submitted a section and when. The map key's
// presence in CompletedSections is the sole evidence a section is done;
// re-submission overwrites this value but never removes the key.
type SectionSubmission struct {
	SubmittedAt time.Time `json:"submittedAt"`
	SubmittedBy string    `json:"submittedBy"`
}

// CareLog is the single daily record for one recipient on one date.
// ID and CareRecipientID are immutable once created; (recipient, date)
// is the natural key. Each nested domain area is independently settable.
type CareLog struct {
	ID              string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CareRecipientID string `gorm:"type:varchar(36);not null;uniqueIndex:uk_recipient_date" json:"careRecipientId"`
	LogDate         string `gorm:"type:date;not null;uniqueIndex:uk_recipient_date" json:"logDate"`

	WakeTime      string `json:"wakeTime,omitempty"`
	Mood          string `json:"mood,omitempty"`
	DinnerTime    string `json:"dinnerTime,omitempty"`
	BedTime       string `json:"bedTime,omitempty"`
	DaySummary    string `json:"daySummary,omitempty"`
	ConcernsNoted string `json:"concernsNoted,omitempty"`

	Meals        *Meals        `gorm:"serializer:json" json:"meals,omitempty"`
	NightSleep   *NightSleep   `gorm:"serializer:json" json:"nightSleep,omitempty"`
	Medications  []Medication  `gorm:"serializer:json" json:"medications,omitempty"`
	Vitals       *Vitals       `gorm:"serializer:json" json:"vitals,omitempty"`
	Toileting    *Toileting    `gorm:"serializer:json" json:"toileting,omitempty"`
	Falls        []FallEvent   `gorm:"serializer:json" json:"falls,omitempty"`
	SafetyChecks *SafetyChecks `gorm:"serializer:json" json:"safetyChecks,omitempty"`
	HospitalBag  *HospitalBag  `gorm:"serializer:json" json:"hospitalBag,omitempty"`

	CompletedSections map[string]SectionSubmission `gorm:"serializer:json" json:"completedSections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	EventCreated          = "created"
	EventUpdated          = "updated"
	EventSectionSubmitted = "section_submitted"
)

// AuditEntry is append-only: rows are never updated or deleted.
type AuditEntry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CareLogID string    `gorm:"type:varchar(36);not null;index" json:"care_log_id"`
	EventType string    `gorm:"type:varchar(32);not null" json:"event_type"`
	Section   string    `gorm:"type:varchar(32)" json:"section,omitempty"`
	Actor     string    `gorm:"type:varchar(128)" json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

type PackList struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CareRecipientID string     `gorm:"type:varchar(36);index" json:"care_recipient_id"`
	Name            string     `json:"name"`
	Items           []PackItem `gorm:"foreignKey:PackListID" json:"items"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PackItem struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PackListID string `gorm:"type:varchar(36);index" json:"pack_list_id"`
	Label      string `json:"label"`
	Packed     bool   `json:"packed"`
}

func (User) TableName() string          { return "users" }
func (Caregiver) TableName() string     { return "caregivers" }
func (CareRecipient) TableName() string { return "care_recipients" }
func (FamilyMember) TableName() string  { return "family_members" }
func (CareLog) TableName() string       { return "care_logs" }
func (AuditEntry) TableName() string    { return "audit_entries" }
func (PackList) TableName() string      { return "pack_lists" }
func (PackItem) TableName() string      { return "pack_items" }
