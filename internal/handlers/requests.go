package handlers

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest represents a voter editing their own profile.
// Email and team assignment are managed by admins only.
type ProfileUpdateRequest struct {
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// VoteRequest represents a ballot submission
type VoteRequest struct {
	TeamID int `json:"team_id"`
}

// TeamCreateRequest represents a request to create a team
type TeamCreateRequest struct {
	GroupName     string `json:"group_name"`
	DisplayName   string `json:"display_name"`
	AppName       string `json:"app_name"`
	Participates  bool   `json:"participates"`
	HelperID      *int   `json:"helper_id"`
	DeployURL     string `json:"deploy_url"`
	VideoURL      string `json:"video_url"`
	ScreenshotURL string `json:"screenshot_url"`
	Category      string `json:"category"`
	Description   string `json:"description"`
}

// TeamUpdateRequest represents an admin request to update a team
type TeamUpdateRequest struct {
	GroupName     string `json:"group_name"`
	DisplayName   string `json:"display_name"`
	AppName       string `json:"app_name"`
	Participates  bool   `json:"participates"`
	HelperID      *int   `json:"helper_id"`
	DeployURL     string `json:"deploy_url"`
	VideoURL      string `json:"video_url"`
	ScreenshotURL string `json:"screenshot_url"`
	Category      string `json:"category"`
	Description   string `json:"description"`
}

// TeamPresentationRequest represents a helper's update of their own
// team's showcase fields. Absent fields are left unchanged.
type TeamPresentationRequest struct {
	DisplayName   *string `json:"display_name"`
	AppName       *string `json:"app_name"`
	DeployURL     *string `json:"deploy_url"`
	VideoURL      *string `json:"video_url"`
	ScreenshotURL *string `json:"screenshot_url"`
	Category      *string `json:"category"`
	Description   *string `json:"description"`
}

// StudentCreateRequest represents a request to create a student account
type StudentCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TeamID   *int   `json:"team_id"`
}

// StudentUpdateRequest represents a request to update a student account
type StudentUpdateRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	TeamID    *int    `json:"team_id"`
	AvatarURL *string `json:"avatar_url"`
}

// HelperCreateRequest represents a request to create a helper account
type HelperCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HelperUpdateRequest represents a request to update a helper account
type HelperUpdateRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// AdminCreateRequest represents a request to create an admin account
type AdminCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminUpdateRequest represents a request to update an admin account
type AdminUpdateRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// PasswordConfirmRequest carries the password re-check required by
// destructive admin operations
type PasswordConfirmRequest struct {
	Password string `json:"password"`
}

// ConfigUpdateRequest represents a partial voting-config update.
// Dates use RFC 3339; the Clear flags reset optional dates.
type ConfigUpdateRequest struct {
	VotingDeadline       *string `json:"voting_deadline"`
	VotingStartDate      *string `json:"voting_start_date"`
	ClearVotingStartDate bool    `json:"clear_voting_start_date"`
	DataLoadingStartDate *string `json:"data_loading_start_date"`
	DataLoadingEndDate   *string `json:"data_loading_end_date"`
	ClearDataLoading     bool    `json:"clear_data_loading"`
	VotingPaused         *bool   `json:"voting_paused"`
}
