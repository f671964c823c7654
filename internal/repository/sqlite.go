package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/amontoya/webawards/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS helpers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			group_name TEXT NOT NULL UNIQUE,
			display_name TEXT,
			app_name TEXT,
			participates BOOLEAN NOT NULL DEFAULT 0,
			helper_id INTEGER,
			deploy_url TEXT,
			video_url TEXT,
			screenshot_url TEXT,
			category TEXT,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (helper_id) REFERENCES helpers(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar_url TEXT,
			team_id INTEGER,
			has_seen_intro BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			voter_kind TEXT NOT NULL,
			voter_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
			UNIQUE(voter_kind, voter_id, team_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			voter_kind TEXT NOT NULL,
			voter_id INTEGER NOT NULL,
			team_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
			UNIQUE(voter_kind, voter_id, team_id)
		)`,
		`CREATE TABLE IF NOT EXISTS configs (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			voting_deadline DATETIME NOT NULL,
			voting_start_date DATETIME,
			data_loading_start_date DATETIME,
			data_loading_end_date DATETIME,
			voting_paused BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_team ON votes(team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_voter ON votes(voter_kind, voter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_voter ON favorites(voter_kind, voter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_team ON students(team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_helper ON teams(helper_id)`,
	}

	additionalMigrations := []string{
		`ALTER TABLE teams ADD COLUMN category TEXT`,
		`ALTER TABLE teams ADD COLUMN description TEXT`,
		`ALTER TABLE configs ADD COLUMN voting_start_date DATETIME`,
		`ALTER TABLE configs ADD COLUMN data_loading_start_date DATETIME`,
		`ALTER TABLE configs ADD COLUMN data_loading_end_date DATETIME`,
		`ALTER TABLE configs ADD COLUMN voting_paused BOOLEAN NOT NULL DEFAULT 0`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	for _, migration := range additionalMigrations {
		r.db.Exec(migration) // Ignore errors - columns may already exist
	}

	return nil
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint error
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// ==================== Student Methods ====================

const studentColumns = `id, name, email, password_hash, avatar_url, team_id, has_seen_intro`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	var s models.Student
	var avatarURL sql.NullString
	var teamID sql.NullInt64
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &avatarURL, &teamID, &s.HasSeenIntro); err != nil {
		return nil, err
	}
	s.AvatarURL = avatarURL.String
	if teamID.Valid {
		id := int(teamID.Int64)
		s.TeamID = &id
	}
	return &s, nil
}

// ListStudents returns all students ordered by name
func (r *Repository) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// GetStudent retrieves a student by id
func (r *Repository) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return s, err
}

// GetStudentByEmail retrieves a student by email (case-insensitive)
func (r *Repository) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE LOWER(email) = LOWER(?)`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return s, err
}

// CreateStudent creates a new student
func (r *Repository) CreateStudent(ctx context.Context, name, email, passwordHash string, teamID *int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO students (name, email, password_hash, team_id)
		VALUES (?, ?, ?, ?)
	`, name, strings.ToLower(strings.TrimSpace(email)), passwordHash, teamID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateStudent updates a student's profile fields
func (r *Repository) UpdateStudent(ctx context.Context, id int, name, email string, teamID *int, avatarURL *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE students SET name = ?, email = ?, team_id = ?,
			avatar_url = COALESCE(?, avatar_url)
		WHERE id = ?
	`, name, strings.ToLower(strings.TrimSpace(email)), teamID, avatarURL, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRowAffected(result)
}

// SetStudentIntroSeen marks the student's introduction as seen
func (r *Repository) SetStudentIntroSeen(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE students SET has_seen_intro = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteStudent deletes a student along with their votes and favorites.
// Votes carry no foreign key to the voter tables (tagged union), so the
// cascade is done by hand.
func (r *Repository) DeleteStudent(ctx context.Context, id int) error {
	return r.deleteVoter(ctx, models.KindStudent, id, "students")
}

// ==================== Helper Methods ====================

const accountColumns = `id, name, email, password_hash, avatar_url`

func scanHelper(row interface{ Scan(...interface{}) error }) (*models.Helper, error) {
	var h models.Helper
	var avatarURL sql.NullString
	if err := row.Scan(&h.ID, &h.Name, &h.Email, &h.PasswordHash, &avatarURL); err != nil {
		return nil, err
	}
	h.AvatarURL = avatarURL.String
	return &h, nil
}

// ListHelpers returns all helpers ordered by name
func (r *Repository) ListHelpers(ctx context.Context) ([]models.Helper, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM helpers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var helpers []models.Helper
	for rows.Next() {
		h, err := scanHelper(rows)
		if err != nil {
			return nil, err
		}
		helpers = append(helpers, *h)
	}
	return helpers, rows.Err()
}

// GetHelper retrieves a helper by id
func (r *Repository) GetHelper(ctx context.Context, id int) (*models.Helper, error) {
	h, err := scanHelper(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM helpers WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return h, err
}

// GetHelperByEmail retrieves a helper by email (case-insensitive)
func (r *Repository) GetHelperByEmail(ctx context.Context, email string) (*models.Helper, error) {
	h, err := scanHelper(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM helpers WHERE LOWER(email) = LOWER(?)`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return h, err
}

// CreateHelper creates a new helper
func (r *Repository) CreateHelper(ctx context.Context, name, email, passwordHash string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO helpers (name, email, password_hash) VALUES (?, ?, ?)
	`, name, strings.ToLower(strings.TrimSpace(email)), passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateHelper updates a helper's profile fields
func (r *Repository) UpdateHelper(ctx context.Context, id int, name, email string, avatarURL *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE helpers SET name = ?, email = ?, avatar_url = COALESCE(?, avatar_url) WHERE id = ?
	`, name, strings.ToLower(strings.TrimSpace(email)), avatarURL, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRowAffected(result)
}

// DeleteHelper deletes a helper along with their votes and favorites.
// Teams owned by the helper keep existing with helper_id nulled by the
// foreign key.
func (r *Repository) DeleteHelper(ctx context.Context, id int) error {
	return r.deleteVoter(ctx, models.KindHelper, id, "helpers")
}

// ==================== Admin Methods ====================

func scanAdmin(row interface{ Scan(...interface{}) error }) (*models.Admin, error) {
	var a models.Admin
	var avatarURL sql.NullString
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &avatarURL); err != nil {
		return nil, err
	}
	a.AvatarURL = avatarURL.String
	return &a, nil
}

// ListAdmins returns all admins ordered by name
func (r *Repository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM admins ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *a)
	}
	return admins, rows.Err()
}

// GetAdmin retrieves an admin by id
func (r *Repository) GetAdmin(ctx context.Context, id int) (*models.Admin, error) {
	a, err := scanAdmin(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM admins WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

// GetAdminByEmail retrieves an admin by email (case-insensitive)
func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, err := scanAdmin(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM admins WHERE LOWER(email) = LOWER(?)`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

// CreateAdmin creates a new admin
func (r *Repository) CreateAdmin(ctx context.Context, name, email, passwordHash string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (name, email, password_hash) VALUES (?, ?, ?)
	`, name, strings.ToLower(strings.TrimSpace(email)), passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateAdmin updates an admin's profile fields
func (r *Repository) UpdateAdmin(ctx context.Context, id int, name, email string, avatarURL *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admins SET name = ?, email = ?, avatar_url = COALESCE(?, avatar_url) WHERE id = ?
	`, name, strings.ToLower(strings.TrimSpace(email)), avatarURL, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRowAffected(result)
}

// DeleteAdmin deletes an admin along with their votes and favorites
func (r *Repository) DeleteAdmin(ctx context.Context, id int) error {
	return r.deleteVoter(ctx, models.KindAdmin, id, "admins")
}

// deleteVoter removes a voter row and the votes/favorites cast under
// their (kind, id) reference, in one transaction.
func (r *Repository) deleteVoter(ctx context.Context, kind models.VoterKind, id int, table string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE voter_kind = ? AND voter_id = ?`, kind, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE voter_kind = ? AND voter_id = ?`, kind, id); err != nil {
		return err
	}

	// table is one of the three fixed voter tables, never user input
	result, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// VoterExists reports whether a (kind, id) reference still names a row
// in its voter table. Used to invalidate tokens of deleted accounts.
func (r *Repository) VoterExists(ctx context.Context, voter models.VoterRef) (bool, error) {
	var table string
	switch voter.Kind {
	case models.KindStudent:
		table = "students"
	case models.KindHelper:
		table = "helpers"
	case models.KindAdmin:
		table = "admins"
	default:
		return false, nil
	}
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, voter.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ==================== Team Methods ====================

const teamColumns = `id, group_name, display_name, app_name, participates, helper_id,
	deploy_url, video_url, screenshot_url, category, description`

func scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	var displayName, appName, deployURL, videoURL, screenshotURL, category, description sql.NullString
	var helperID sql.NullInt64
	if err := row.Scan(&t.ID, &t.GroupName, &displayName, &appName, &t.Participates, &helperID,
		&deployURL, &videoURL, &screenshotURL, &category, &description); err != nil {
		return nil, err
	}
	t.DisplayName = displayName.String
	t.AppName = appName.String
	t.DeployURL = deployURL.String
	t.VideoURL = videoURL.String
	t.ScreenshotURL = screenshotURL.String
	t.Category = category.String
	t.Description = description.String
	if helperID.Valid {
		id := int(helperID.Int64)
		t.HelperID = &id
	}
	return &t, nil
}

func (r *Repository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

// ListTeams returns all teams ordered by group name
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	return r.queryTeams(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY group_name`)
}

// ListParticipatingTeams returns participating teams in random order,
// so no team is permanently advantaged by list position on the public
// voting page.
func (r *Repository) ListParticipatingTeams(ctx context.Context) ([]models.Team, error) {
	return r.queryTeams(ctx, `SELECT `+teamColumns+` FROM teams WHERE participates = 1 ORDER BY RANDOM()`)
}

// GetTeam retrieves a team by id
func (r *Repository) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// CreateTeam creates a new team
func (r *Repository) CreateTeam(ctx context.Context, team models.Team) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (group_name, display_name, app_name, participates, helper_id,
			deploy_url, video_url, screenshot_url, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, team.GroupName, team.DisplayName, team.AppName, team.Participates, team.HelperID,
		team.DeployURL, team.VideoURL, team.ScreenshotURL, team.Category, team.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateTeam updates all mutable team fields
func (r *Repository) UpdateTeam(ctx context.Context, id int, team models.Team) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE teams SET group_name = ?, display_name = ?, app_name = ?, participates = ?,
			helper_id = ?, deploy_url = ?, video_url = ?, screenshot_url = ?,
			category = ?, description = ?
		WHERE id = ?
	`, team.GroupName, team.DisplayName, team.AppName, team.Participates, team.HelperID,
		team.DeployURL, team.VideoURL, team.ScreenshotURL, team.Category, team.Description, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRowAffected(result)
}

// DeleteTeam deletes a team. Votes and favorites cascade through the
// foreign keys; students keep existing with team_id nulled.
func (r *Repository) DeleteTeam(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// GetTeamRosters resolves students and owning helpers for the given
// team ids. Returns a map of team id to students and a map of team id
// to helper (nil entries for teams without one).
func (r *Repository) GetTeamRosters(ctx context.Context, teamIDs []int) (map[int][]models.TeamMember, map[int]*models.TeamMember, error) {
	students := make(map[int][]models.TeamMember)
	helpers := make(map[int]*models.TeamMember)
	if len(teamIDs) == 0 {
		return students, helpers, nil
	}

	placeholders := strings.Repeat("?,", len(teamIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(teamIDs))
	for i, id := range teamIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT team_id, id, name, avatar_url FROM students
		WHERE team_id IN (`+placeholders+`)
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int
		var m models.TeamMember
		var avatarURL sql.NullString
		if err := rows.Scan(&teamID, &m.ID, &m.Name, &avatarURL); err != nil {
			return nil, nil, err
		}
		m.AvatarURL = avatarURL.String
		students[teamID] = append(students[teamID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	helperRows, err := r.db.QueryContext(ctx, `
		SELECT t.id, h.id, h.name, h.avatar_url
		FROM teams t
		JOIN helpers h ON t.helper_id = h.id
		WHERE t.id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, nil, err
	}
	defer helperRows.Close()

	for helperRows.Next() {
		var teamID int
		var m models.TeamMember
		var avatarURL sql.NullString
		if err := helperRows.Scan(&teamID, &m.ID, &m.Name, &avatarURL); err != nil {
			return nil, nil, err
		}
		m.AvatarURL = avatarURL.String
		helpers[teamID] = &m
	}
	return students, helpers, helperRows.Err()
}

// ==================== Vote Methods ====================

// CountVotes returns the number of ballots held by a voter
func (r *Repository) CountVotes(ctx context.Context, voter models.VoterRef) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE voter_kind = ? AND voter_id = ?`,
		voter.Kind, voter.ID).Scan(&count)
	return count, err
}

// FindVote retrieves the voter's ballot for a team, if any
func (r *Repository) FindVote(ctx context.Context, voter models.VoterRef, teamID int) (*models.Vote, error) {
	var v models.Vote
	err := r.db.QueryRowContext(ctx, `
		SELECT id, voter_kind, voter_id, team_id, created_at FROM votes
		WHERE voter_kind = ? AND voter_id = ? AND team_id = ?
	`, voter.Kind, voter.ID, teamID).Scan(&v.ID, &v.Voter.Kind, &v.Voter.ID, &v.TeamID, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// InsertVote appends one ballot to the ledger. The quota recount and
// the insert run in one transaction so two concurrent casts cannot
// both slip under the quota; the UNIQUE(voter_kind, voter_id, team_id)
// constraint is the final arbiter for duplicates and surfaces as
// ErrDuplicate.
func (r *Repository) InsertVote(ctx context.Context, voter models.VoterRef, teamID, quota int) (*models.Vote, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE voter_kind = ? AND voter_id = ?`,
		voter.Kind, voter.ID).Scan(&count)
	if err != nil {
		return nil, err
	}
	if count >= quota {
		return nil, ErrQuotaExceeded
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO votes (voter_kind, voter_id, team_id, created_at) VALUES (?, ?, ?, ?)
	`, voter.Kind, voter.ID, teamID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Vote{ID: int(id), Voter: voter, TeamID: teamID, CreatedAt: now}, nil
}

// ListVotesByVoter returns the voter's ballots with team info, newest first
func (r *Repository) ListVotesByVoter(ctx context.Context, voter models.VoterRef) ([]VoteWithTeam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, t.id, t.group_name, t.display_name, t.app_name, v.created_at
		FROM votes v
		JOIN teams t ON v.team_id = t.id
		WHERE v.voter_kind = ? AND v.voter_id = ?
		ORDER BY v.created_at DESC
	`, voter.Kind, voter.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []VoteWithTeam
	for rows.Next() {
		var v VoteWithTeam
		var displayName, appName sql.NullString
		if err := rows.Scan(&v.VoteID, &v.TeamID, &v.GroupName, &displayName, &appName, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.DisplayName = displayName.String
		v.AppName = appName.String
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// ListVotesByKind returns all ballots of one voter kind joined with
// voter identity and team info, ordered by voter name (admin views)
func (r *Repository) ListVotesByKind(ctx context.Context, kind models.VoterKind) ([]VoterVoteRow, error) {
	var table string
	switch kind {
	case models.KindStudent:
		table = "students"
	case models.KindHelper:
		table = "helpers"
	case models.KindAdmin:
		table = "admins"
	default:
		return nil, ErrNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, v.id, t.id, t.group_name, t.display_name, t.app_name, v.created_at
		FROM votes v
		JOIN `+table+` u ON v.voter_id = u.id
		JOIN teams t ON v.team_id = t.id
		WHERE v.voter_kind = ?
		ORDER BY u.name, v.created_at
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VoterVoteRow
	for rows.Next() {
		var row VoterVoteRow
		var displayName, appName sql.NullString
		if err := rows.Scan(&row.VoterID, &row.VoterName, &row.VoterEmail, &row.VoteID,
			&row.TeamID, &row.GroupName, &displayName, &appName, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.DisplayName = displayName.String
		row.AppName = appName.String
		result = append(result, row)
	}
	return result, rows.Err()
}

// CountVotesByTeam aggregates votes per participating team, descending
// by count with team id as the deterministic tie-break
func (r *Repository) CountVotesByTeam(ctx context.Context) ([]models.TeamCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.group_name, t.display_name, t.app_name, t.screenshot_url, COUNT(v.id)
		FROM teams t
		LEFT JOIN votes v ON v.team_id = t.id
		WHERE t.participates = 1
		GROUP BY t.id
		ORDER BY COUNT(v.id) DESC, t.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.TeamCount
	for rows.Next() {
		var c models.TeamCount
		var displayName, appName, screenshotURL sql.NullString
		if err := rows.Scan(&c.TeamID, &c.GroupName, &displayName, &appName, &screenshotURL, &c.VoteCount); err != nil {
			return nil, err
		}
		c.DisplayName = displayName.String
		c.AppName = appName.String
		c.ScreenshotURL = screenshotURL.String
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// PodiumRows aggregates votes per participating team, restricted to
// teams with at least one vote, with the display metadata the podium
// needs. Same ordering contract as CountVotesByTeam.
func (r *Repository) PodiumRows(ctx context.Context) ([]PodiumRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.group_name, t.display_name, t.app_name, t.screenshot_url,
			t.video_url, t.deploy_url, t.description, t.category, COUNT(v.id)
		FROM teams t
		JOIN votes v ON v.team_id = t.id
		WHERE t.participates = 1
		GROUP BY t.id
		ORDER BY COUNT(v.id) DESC, t.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PodiumRow
	for rows.Next() {
		var row PodiumRow
		var displayName, appName, screenshotURL, videoURL, deployURL, description, category sql.NullString
		if err := rows.Scan(&row.TeamID, &row.GroupName, &displayName, &appName, &screenshotURL,
			&videoURL, &deployURL, &description, &category, &row.VoteCount); err != nil {
			return nil, err
		}
		row.DisplayName = displayName.String
		row.AppName = appName.String
		row.ScreenshotURL = screenshotURL.String
		row.VideoURL = videoURL.String
		row.DeployURL = deployURL.String
		row.Description = description.String
		row.Category = category.String
		result = append(result, row)
	}
	return result, rows.Err()
}

// DeleteVote deletes a single ballot by id
func (r *Repository) DeleteVote(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// DeleteAllVotes clears the ledger and reports how many rows were removed
func (r *Repository) DeleteAllVotes(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votes`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ==================== Config Methods ====================

const defaultDeadlineDays = 30

// GetConfig returns the singleton voting configuration, creating one
// with a deadline 30 days out if none exists yet.
func (r *Repository) GetConfig(ctx context.Context) (*models.VotingConfig, error) {
	cfg, err := r.readConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	deadline := time.Now().UTC().AddDate(0, 0, defaultDeadlineDays)
	// INSERT OR IGNORE keeps this race-safe: whoever loses re-reads.
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO configs (id, voting_deadline) VALUES (1, ?)`, deadline); err != nil {
		return nil, err
	}
	return r.readConfig(ctx)
}

func (r *Repository) readConfig(ctx context.Context) (*models.VotingConfig, error) {
	var cfg models.VotingConfig
	var start, dlStart, dlEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT voting_deadline, voting_start_date, data_loading_start_date,
			data_loading_end_date, voting_paused
		FROM configs WHERE id = 1
	`).Scan(&cfg.VotingDeadline, &start, &dlStart, &dlEnd, &cfg.VotingPaused)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if start.Valid {
		t := start.Time
		cfg.VotingStartDate = &t
	}
	if dlStart.Valid {
		t := dlStart.Time
		cfg.DataLoadingStartDate = &t
	}
	if dlEnd.Valid {
		t := dlEnd.Time
		cfg.DataLoadingEndDate = &t
	}
	return &cfg, nil
}

// UpdateConfig replaces the singleton configuration row
func (r *Repository) UpdateConfig(ctx context.Context, cfg models.VotingConfig) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO configs (id, voting_deadline, voting_start_date,
			data_loading_start_date, data_loading_end_date, voting_paused)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			voting_deadline = excluded.voting_deadline,
			voting_start_date = excluded.voting_start_date,
			data_loading_start_date = excluded.data_loading_start_date,
			data_loading_end_date = excluded.data_loading_end_date,
			voting_paused = excluded.voting_paused
	`, cfg.VotingDeadline, cfg.VotingStartDate, cfg.DataLoadingStartDate,
		cfg.DataLoadingEndDate, cfg.VotingPaused)
	return err
}

// ==================== Favorite Methods ====================

// FindFavorite reports whether the voter has bookmarked the team
func (r *Repository) FindFavorite(ctx context.Context, voter models.VoterRef, teamID int) (bool, error) {
	var id int
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM favorites WHERE voter_kind = ? AND voter_id = ? AND team_id = ?`,
		voter.Kind, voter.ID, teamID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertFavorite bookmarks a team for the voter
func (r *Repository) InsertFavorite(ctx context.Context, voter models.VoterRef, teamID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (voter_kind, voter_id, team_id) VALUES (?, ?, ?)`,
		voter.Kind, voter.ID, teamID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteFavorite removes the voter's bookmark of a team
func (r *Repository) DeleteFavorite(ctx context.Context, voter models.VoterRef, teamID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE voter_kind = ? AND voter_id = ? AND team_id = ?`,
		voter.Kind, voter.ID, teamID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

// ListFavoriteTeamIDs returns the ids of the voter's bookmarked teams,
// newest bookmark first
func (r *Repository) ListFavoriteTeamIDs(ctx context.Context, voter models.VoterRef) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT team_id FROM favorites
		WHERE voter_kind = ? AND voter_id = ?
		ORDER BY created_at DESC
	`, voter.Kind, voter.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// requireRowAffected converts a zero-row update/delete into ErrNotFound
func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
