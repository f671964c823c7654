package repository

import (
	"context"
	"time"

	"github.com/amontoya/webawards/internal/models"
)

// StudentRepository defines student data operations
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int) (*models.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	CreateStudent(ctx context.Context, name, email, passwordHash string, teamID *int) (int64, error)
	UpdateStudent(ctx context.Context, id int, name, email string, teamID *int, avatarURL *string) error
	SetStudentIntroSeen(ctx context.Context, id int) error
	DeleteStudent(ctx context.Context, id int) error
}

// HelperRepository defines helper data operations
type HelperRepository interface {
	ListHelpers(ctx context.Context) ([]models.Helper, error)
	GetHelper(ctx context.Context, id int) (*models.Helper, error)
	GetHelperByEmail(ctx context.Context, email string) (*models.Helper, error)
	CreateHelper(ctx context.Context, name, email, passwordHash string) (int64, error)
	UpdateHelper(ctx context.Context, id int, name, email string, avatarURL *string) error
	DeleteHelper(ctx context.Context, id int) error
}

// AdminRepository defines admin data operations
type AdminRepository interface {
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	GetAdmin(ctx context.Context, id int) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, name, email, passwordHash string) (int64, error)
	UpdateAdmin(ctx context.Context, id int, name, email string, avatarURL *string) error
	DeleteAdmin(ctx context.Context, id int) error
}

// TeamRepository defines team data operations
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListParticipatingTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	CreateTeam(ctx context.Context, team models.Team) (int64, error)
	UpdateTeam(ctx context.Context, id int, team models.Team) error
	DeleteTeam(ctx context.Context, id int) error
	GetTeamRosters(ctx context.Context, teamIDs []int) (map[int][]models.TeamMember, map[int]*models.TeamMember, error)
}

// VoteWithTeam is one of a voter's ballots joined with team info
type VoteWithTeam struct {
	VoteID      int       `json:"vote_id"`
	TeamID      int       `json:"team_id"`
	GroupName   string    `json:"group_name"`
	DisplayName string    `json:"display_name,omitempty"`
	AppName     string    `json:"app_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoterVoteRow is one ballot of a given voter kind, joined with both
// the voter's identity and the target team (admin dashboard views)
type VoterVoteRow struct {
	VoterID     int
	VoterName   string
	VoterEmail  string
	VoteID      int
	TeamID      int
	GroupName   string
	DisplayName string
	AppName     string
	CreatedAt   time.Time
}

// PodiumRow is one team's aggregate used to build the podium
type PodiumRow struct {
	TeamID        int
	GroupName     string
	DisplayName   string
	AppName       string
	ScreenshotURL string
	VideoURL      string
	DeployURL     string
	Description   string
	Category      string
	VoteCount     int
}

// VoteRepository defines the vote ledger operations
type VoteRepository interface {
	CountVotes(ctx context.Context, voter models.VoterRef) (int, error)
	FindVote(ctx context.Context, voter models.VoterRef, teamID int) (*models.Vote, error)
	InsertVote(ctx context.Context, voter models.VoterRef, teamID, quota int) (*models.Vote, error)
	ListVotesByVoter(ctx context.Context, voter models.VoterRef) ([]VoteWithTeam, error)
	ListVotesByKind(ctx context.Context, kind models.VoterKind) ([]VoterVoteRow, error)
	CountVotesByTeam(ctx context.Context) ([]models.TeamCount, error)
	PodiumRows(ctx context.Context) ([]PodiumRow, error)
	DeleteVote(ctx context.Context, id int) error
	DeleteAllVotes(ctx context.Context) (int64, error)
}

// ConfigRepository defines voting-config data operations
type ConfigRepository interface {
	GetConfig(ctx context.Context) (*models.VotingConfig, error)
	UpdateConfig(ctx context.Context, cfg models.VotingConfig) error
}

// FavoriteRepository defines favorite data operations
type FavoriteRepository interface {
	FindFavorite(ctx context.Context, voter models.VoterRef, teamID int) (bool, error)
	InsertFavorite(ctx context.Context, voter models.VoterRef, teamID int) error
	DeleteFavorite(ctx context.Context, voter models.VoterRef, teamID int) error
	ListFavoriteTeamIDs(ctx context.Context, voter models.VoterRef) ([]int, error)
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	StudentRepository
	HelperRepository
	AdminRepository
	TeamRepository
	VoteRepository
	ConfigRepository
	FavoriteRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
