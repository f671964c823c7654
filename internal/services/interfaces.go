package services

import (
	"context"

	"github.com/amontoya/webawards/internal/models"
	"github.com/amontoya/webawards/internal/repository"
)

// ConfigServicer defines the interface for voting-window configuration
type ConfigServicer interface {
	Get(ctx context.Context) (*models.VotingConfig, error)
	Window(ctx context.Context) (WindowState, error)
	Update(ctx context.Context, upd ConfigUpdate) (*models.VotingConfig, error)
	TogglePause(ctx context.Context) (*models.VotingConfig, error)
	SetBroadcaster(b Broadcaster)
}

// VotingServicer defines the interface for ballot operations
type VotingServicer interface {
	CastVote(ctx context.Context, voter models.VoterRef, teamID int) (*models.Vote, error)
	MyVotes(ctx context.Context, voter models.VoterRef) ([]repository.VoteWithTeam, error)
	Status(ctx context.Context, voter models.VoterRef) (*VoteStatus, error)
	VisibleCounts(ctx context.Context, voter models.VoterRef) (*VisibleCounts, error)
}

// ResultsServicer defines the interface for aggregation and podium
type ResultsServicer interface {
	VoteCounts(ctx context.Context) ([]models.TeamCount, error)
	Podium(ctx context.Context) ([]PodiumEntry, error)
	VotesByKind(ctx context.Context, kind models.VoterKind) ([]VoterVotes, error)
}

// TeamServicer defines the interface for team operations
type TeamServicer interface {
	ListPublic(ctx context.Context) ([]models.TeamWithRoster, error)
	ListAll(ctx context.Context) ([]models.TeamWithRoster, error)
	ListMentored(ctx context.Context, helperID int) ([]models.TeamWithRoster, error)
	Get(ctx context.Context, id int) (*models.TeamWithRoster, error)
	Create(ctx context.Context, team models.Team) (*models.Team, error)
	Update(ctx context.Context, id int, team models.Team) (*models.Team, error)
	UpdatePresentation(ctx context.Context, helperID, teamID int, upd PresentationUpdate) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	GenerateQRImage(ctx context.Context, id int) ([]byte, error)
}

// StudentServicer defines the interface for student account management
type StudentServicer interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int) (*models.Student, error)
	Create(ctx context.Context, name, email, password string, teamID *int) (*models.Student, error)
	Update(ctx context.Context, id int, name, email string, teamID *int, avatarURL *string) (*models.Student, error)
	MarkIntroSeen(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

// HelperServicer defines the interface for helper account management
type HelperServicer interface {
	List(ctx context.Context) ([]models.Helper, error)
	Get(ctx context.Context, id int) (*models.Helper, error)
	Create(ctx context.Context, name, email, password string) (*models.Helper, error)
	Update(ctx context.Context, id int, name, email string, avatarURL *string) (*models.Helper, error)
	Delete(ctx context.Context, id int) error
}

// AdminServicer defines the interface for admin accounts and the
// password-confirmed destructive operations
type AdminServicer interface {
	List(ctx context.Context) ([]models.Admin, error)
	Get(ctx context.Context, id int) (*models.Admin, error)
	Create(ctx context.Context, name, email, password string) (*models.Admin, error)
	Update(ctx context.Context, id int, name, email string, avatarURL *string) (*models.Admin, error)
	VerifyPassword(ctx context.Context, adminID int, password string) (int, error)
	Delete(ctx context.Context, actingID, targetID int, password string) error
	DeleteVote(ctx context.Context, id int) error
	ResetAllVotes(ctx context.Context, actingID int, password string) (int64, error)
}

// FavoriteServicer defines the interface for team bookmarks
type FavoriteServicer interface {
	Toggle(ctx context.Context, voter models.VoterRef, teamID int) (bool, error)
	ListMine(ctx context.Context, voter models.VoterRef) ([]int, error)
}

// IdentityServicer defines the interface for login and profile lookup
type IdentityServicer interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, voter models.VoterRef) (*Profile, error)
	UpdateMe(ctx context.Context, voter models.VoterRef, name string, avatarURL *string) (*Profile, error)
}

// Ensure concrete types implement interfaces
var (
	_ ConfigServicer   = (*ConfigService)(nil)
	_ VotingServicer   = (*VotingService)(nil)
	_ ResultsServicer  = (*ResultsService)(nil)
	_ TeamServicer     = (*TeamService)(nil)
	_ StudentServicer  = (*StudentService)(nil)
	_ HelperServicer   = (*HelperService)(nil)
	_ AdminServicer    = (*AdminService)(nil)
	_ FavoriteServicer = (*FavoriteService)(nil)
	_ IdentityServicer = (*IdentityService)(nil)
)
