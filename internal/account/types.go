package account

import (
	"time"

	"opengov/internal/forms"
)

// Notification frequencies.
const (
	FrequencyRealtime = "realtime"
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
)

// Settings is everything a signed-in user can change about their account.
type Settings struct {
	UserID        string        `bson:"_id" json:"userId"`
	Notifications Notifications `bson:"notifications" json:"notifications"`
	Privacy       Privacy       `bson:"privacy" json:"privacy"`
	Preferences   Preferences   `bson:"preferences" json:"preferences"`
	Profile       forms.Profile `bson:"profile" json:"profile"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}

type Notifications struct {
	Email          bool   `bson:"email" json:"email" form:"email"`
	Push           bool   `bson:"push" json:"push" form:"push"`
	SMS            bool   `bson:"sms" json:"sms" form:"sms"`
	ProjectUpdates bool   `bson:"project_updates" json:"projectUpdates" form:"projectUpdates"`
	ReportStatus   bool   `bson:"report_status" json:"reportStatus" form:"reportStatus"`
	BudgetAlerts   bool   `bson:"budget_alerts" json:"budgetAlerts" form:"budgetAlerts"`
	SecurityAlerts bool   `bson:"security_alerts" json:"securityAlerts" form:"securityAlerts"`
	Newsletter     bool   `bson:"newsletter_updates" json:"newsletterUpdates" form:"newsletterUpdates"`
	Frequency      string `bson:"frequency" json:"frequency" form:"frequency"`
}

type Privacy struct {
	ProfileVisibility  bool `bson:"profile_visibility" json:"profileVisibility" form:"profileVisibility"`
	ActivityTracking   bool `bson:"activity_tracking" json:"activityTracking" form:"activityTracking"`
	DataSharing        bool `bson:"data_sharing" json:"dataSharing" form:"dataSharing"`
	AnonymousReporting bool `bson:"anonymous_reporting" json:"anonymousReporting" form:"anonymousReporting"`
	CookieConsent      bool `bson:"cookie_consent" json:"cookieConsent" form:"cookieConsent"`
}

// Preferences covers appearance, accessibility and data handling.
type Preferences struct {
	FontSize        int    `bson:"font_size" json:"fontSize" form:"fontSize"`
	ReducedMotion   bool   `bson:"reduced_motion" json:"reducedMotion" form:"reducedMotion"`
	HighContrast    bool   `bson:"high_contrast" json:"highContrast" form:"highContrast"`
	Language        string `bson:"language" json:"language" form:"language"`
	SessionTimeout  string `bson:"session_timeout" json:"sessionTimeout" form:"sessionTimeout"` // minutes
	AutoSave        bool   `bson:"auto_save" json:"autoSave" form:"autoSave"`
	DataCompression bool   `bson:"data_compression" json:"dataCompression" form:"dataCompression"`
}

// Ack is the single confirmation shown after a save.
type Ack struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Defaults returns the settings of a user who never saved anything.
func Defaults(userID string) *Settings {
	return &Settings{
		UserID: userID,
		Notifications: Notifications{
			Email:          true,
			Push:           true,
			ProjectUpdates: true,
			ReportStatus:   true,
			SecurityAlerts: true,
			Frequency:      FrequencyDaily,
		},
		Privacy: Privacy{
			ProfileVisibility:  true,
			ActivityTracking:   true,
			AnonymousReporting: true,
			CookieConsent:      true,
		},
		Preferences: Preferences{
			FontSize:        16,
			Language:        "english",
			SessionTimeout:  "30",
			AutoSave:        true,
			DataCompression: true,
		},
		Profile: forms.Profile{PreferredLanguage: "english"},
	}
}
