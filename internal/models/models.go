package models

import "time"

// VoterKind identifies which identity space a voter belongs to.
// The three spaces are disjoint: a student id and a helper id may
// collide numerically, so a voter is always addressed by (kind, id).
type VoterKind string

const (
	KindStudent VoterKind = "student"
	KindHelper  VoterKind = "helper"
	KindAdmin   VoterKind = "admin"
)

// Valid reports whether k is one of the three known voter kinds.
func (k VoterKind) Valid() bool {
	switch k {
	case KindStudent, KindHelper, KindAdmin:
		return true
	}
	return false
}

// VoterRef is a tagged reference to a voter in any identity space.
type VoterRef struct {
	Kind VoterKind `json:"kind"`
	ID   int       `json:"id"`
}

// Student is a voter who may belong to at most one team.
type Student struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	TeamID       *int   `json:"team_id"`
	HasSeenIntro bool   `json:"has_seen_intro"`
}

// Helper is a voter who may mentor teams.
type Helper struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// Admin is a voter with administrative privileges.
type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// Team categories as used by the showcase frontend. The empty string
// means the team has not been categorized yet.
const (
	CategoryChat         = "Chat"
	CategoryEcommerce    = "E-commerce"
	CategoryJuego        = "Juego"
	CategoryPlanificador = "Planificador"
	CategoryRedSocial    = "Red Social"
	CategoryMix          = "Mix"
	CategoryOtro         = "Otro"
)

// ValidCategory reports whether c is a known team category or empty.
func ValidCategory(c string) bool {
	switch c {
	case "", CategoryChat, CategoryEcommerce, CategoryJuego,
		CategoryPlanificador, CategoryRedSocial, CategoryMix, CategoryOtro:
		return true
	}
	return false
}

// Team is a participating project entry. Only teams with Participates
// set are visible in public listings and eligible to receive votes.
type Team struct {
	ID            int    `json:"id"`
	GroupName     string `json:"group_name"`
	DisplayName   string `json:"display_name,omitempty"`
	AppName       string `json:"app_name,omitempty"`
	Participates  bool   `json:"participates"`
	HelperID      *int   `json:"helper_id"`
	DeployURL     string `json:"deploy_url,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
	ScreenshotURL string `json:"screenshot_url,omitempty"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
}

// TeamMember is the public projection of a student or helper on a
// team roster.
type TeamMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// TeamWithRoster is a team together with its resolved participants.
type TeamWithRoster struct {
	Team
	Students []TeamMember `json:"students"`
	Helper   *TeamMember  `json:"helper"`
}

// Vote is one ballot cast by exactly one voter for exactly one team.
type Vote struct {
	ID        int       `json:"id"`
	Voter     VoterRef  `json:"voter"`
	TeamID    int       `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}

// VotingConfig is the singleton voting-window configuration record.
// Exactly one row exists; if absent the repository synthesizes one
// with a deadline 30 days out.
type VotingConfig struct {
	VotingDeadline       time.Time  `json:"voting_deadline"`
	VotingStartDate      *time.Time `json:"voting_start_date"`
	DataLoadingStartDate *time.Time `json:"data_loading_start_date"`
	DataLoadingEndDate   *time.Time `json:"data_loading_end_date"`
	VotingPaused         bool       `json:"voting_paused"`
}

// Favorite is a voter's bookmark of a team. Independent of the ballot
// quota: a voter may favorite any number of teams.
type Favorite struct {
	ID        int       `json:"id"`
	Voter     VoterRef  `json:"voter"`
	TeamID    int       `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamCount is one row of the per-team vote aggregation.
type TeamCount struct {
	TeamID        int    `json:"team_id"`
	GroupName     string `json:"group_name"`
	DisplayName   string `json:"display_name,omitempty"`
	AppName       string `json:"app_name,omitempty"`
	ScreenshotURL string `json:"screenshot_url,omitempty"`
	VoteCount     int    `json:"vote_count"`
}

// WSMessage is the envelope for messages pushed over the live hub.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
