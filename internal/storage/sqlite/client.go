package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/civiclens/backend/internal/storage/models"
	"github.com/civiclens/backend/pkg/logger"
)

// ErrNotFound wraps sql.ErrNoRows so callers outside this package do not
// import database/sql just for the sentinel.
var ErrNotFound = sql.ErrNoRows

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Ping() error {
	return c.db.Ping()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS policy_cards (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		ministry TEXT NOT NULL,
		notification_number TEXT UNIQUE,
		publication_date INTEGER NOT NULL,
		effective_date INTEGER,
		original_text TEXT,
		summary_english TEXT,
		summary_hindi TEXT,
		what_changed TEXT,
		who_affected TEXT,
		what_to_do TEXT,
		source_url TEXT,
		gazette_type TEXT,
		status TEXT DEFAULT 'New',
		missing_dates INTEGER DEFAULT 0,
		missing_officer_info INTEGER DEFAULT 0,
		missing_urls INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_policies_ministry ON policy_cards(ministry);
	CREATE INDEX IF NOT EXISTS idx_policies_publication ON policy_cards(publication_date);
	CREATE INDEX IF NOT EXISTS idx_policies_created ON policy_cards(created_at);

	CREATE TABLE IF NOT EXISTS complaints (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		complaint_text TEXT NOT NULL,
		is_government_url INTEGER DEFAULT 0,
		validation_status TEXT DEFAULT 'pending',
		validation_reason TEXT,
		eligible INTEGER DEFAULT 0,
		eligibility_score INTEGER DEFAULT 0,
		eligibility_reason TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_complaints_created ON complaints(created_at);

	CREATE TABLE IF NOT EXISTS rti_requests (
		id TEXT PRIMARY KEY,
		complaint_id TEXT NOT NULL UNIQUE,
		rti_text TEXT NOT NULL,
		compliance_score INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (complaint_id) REFERENCES complaints(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT,
		password_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ideas (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_ideas_created ON ideas(created_at);

	CREATE TABLE IF NOT EXISTS votes (
		user_id TEXT NOT NULL,
		idea_id TEXT NOT NULL,
		value INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, idea_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (idea_id) REFERENCES ideas(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		idea_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (idea_id) REFERENCES ideas(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_comments_idea ON comments(idea_id);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// HasPolicy reports whether a record already exists for the natural key:
// notification number when present, otherwise title plus source URL. Callers
// use it to skip summarization work for known records; InsertPolicy still
// enforces the same rule.
func (c *Client) HasPolicy(notificationNumber, title, sourceURL string) (bool, error) {
	var count int
	var err error
	if notificationNumber != "" {
		err = c.db.QueryRow(
			`SELECT COUNT(*) FROM policy_cards WHERE notification_number = ?`, notificationNumber,
		).Scan(&count)
	} else {
		err = c.db.QueryRow(
			`SELECT COUNT(*) FROM policy_cards WHERE title = ? AND source_url = ?`, title, sourceURL,
		).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for existing policy: %w", err)
	}
	return count > 0, nil
}

// InsertPolicy stores a policy record unless one with the same natural key
// already exists. Records keyed by notification number rely on the UNIQUE
// constraint; records without one dedup on (title, source_url). Existing
// records are never overwritten. Returns whether a row was inserted.
func (c *Client) InsertPolicy(p *models.PolicyRecord) (bool, error) {
	var notificationNumber interface{}
	if p.NotificationNumber != "" {
		notificationNumber = p.NotificationNumber
	} else {
		var count int
		err := c.db.QueryRow(
			`SELECT COUNT(*) FROM policy_cards WHERE title = ? AND source_url = ?`,
			p.Title, p.SourceURL,
		).Scan(&count)
		if err != nil {
			return false, fmt.Errorf("failed to check for duplicate policy: %w", err)
		}
		if count > 0 {
			return false, nil
		}
	}

	var effectiveDate interface{}
	if p.EffectiveDate != nil {
		effectiveDate = p.EffectiveDate.Unix()
	}

	query := `
		INSERT INTO policy_cards (id, title, ministry, notification_number, publication_date,
			effective_date, original_text, summary_english, summary_hindi, what_changed,
			who_affected, what_to_do, source_url, gazette_type, status,
			missing_dates, missing_officer_info, missing_urls, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(notification_number) DO NOTHING
	`

	result, err := c.db.Exec(
		query,
		p.ID,
		p.Title,
		p.Ministry,
		notificationNumber,
		p.PublicationDate.Unix(),
		effectiveDate,
		p.OriginalText,
		p.SummaryEnglish,
		p.SummaryHindi,
		p.WhatChanged,
		p.WhoAffected,
		p.WhatToDo,
		p.SourceURL,
		p.GazetteType,
		p.Status,
		boolToInt(p.MissingDates),
		boolToInt(p.MissingOfficerInfo),
		boolToInt(p.MissingURLs),
		p.CreatedAt.Unix(),
		p.UpdatedAt.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert policy: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if affected == 0 {
		logger.Debug("Policy already stored", zap.String("notification_number", p.NotificationNumber))
		return false, nil
	}

	logger.Debug("Policy stored", zap.String("policy_id", p.ID), zap.String("title", p.Title))
	return true, nil
}

const policyColumns = `id, title, ministry, notification_number, publication_date, effective_date,
	original_text, summary_english, summary_hindi, what_changed, who_affected, what_to_do,
	source_url, gazette_type, status, missing_dates, missing_officer_info, missing_urls,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*models.PolicyRecord, error) {
	var p models.PolicyRecord
	var notificationNumber sql.NullString
	var effectiveDate sql.NullInt64
	var publicationDate, createdAt, updatedAt int64
	var missingDates, missingOfficer, missingURLs int

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Ministry,
		&notificationNumber,
		&publicationDate,
		&effectiveDate,
		&p.OriginalText,
		&p.SummaryEnglish,
		&p.SummaryHindi,
		&p.WhatChanged,
		&p.WhoAffected,
		&p.WhatToDo,
		&p.SourceURL,
		&p.GazetteType,
		&p.Status,
		&missingDates,
		&missingOfficer,
		&missingURLs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.NotificationNumber = notificationNumber.String
	p.PublicationDate = time.Unix(publicationDate, 0)
	if effectiveDate.Valid {
		t := time.Unix(effectiveDate.Int64, 0)
		p.EffectiveDate = &t
	}
	p.MissingDates = missingDates != 0
	p.MissingOfficerInfo = missingOfficer != 0
	p.MissingURLs = missingURLs != 0
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)

	return &p, nil
}

func (c *Client) GetPolicy(id string) (*models.PolicyRecord, error) {
	row := c.db.QueryRow(`SELECT `+policyColumns+` FROM policy_cards WHERE id = ?`, id)
	p, err := scanPolicy(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return p, nil
}

// ListRecentPolicies returns policies published after since, newest first.
func (c *Client) ListRecentPolicies(since time.Time, limit int) ([]*models.PolicyRecord, error) {
	query := `SELECT ` + policyColumns + ` FROM policy_cards
		WHERE publication_date >= ? ORDER BY publication_date DESC LIMIT ?`

	rows, err := c.db.Query(query, since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent policies: %w", err)
	}
	defer rows.Close()

	return collectPolicies(rows)
}

// CountPoliciesCreatedSince reports how many records landed after the given
// time. Used to decide whether a fresh scrape is needed.
func (c *Client) CountPoliciesCreatedSince(since time.Time) (int, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM policy_cards WHERE created_at >= ?`, since.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count policies: %w", err)
	}
	return count, nil
}

// SearchPolicies filters by free text over title/summary/details and by
// ministry. Both filters are optional but at least one is expected; the
// query is assembled dynamically.
func (c *Client) SearchPolicies(text, ministry string, limit int) ([]*models.PolicyRecord, error) {
	builder := sq.Select(policyColumns).
		From("policy_cards").
		OrderBy("publication_date DESC").
		Limit(uint64(limit))

	if text != "" {
		pattern := "%" + text + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"summary_english": pattern},
			sq.Like{"what_changed": pattern},
			sq.Like{"who_affected": pattern},
		})
	}
	if ministry != "" {
		builder = builder.Where(sq.Like{"ministry": "%" + ministry + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search policies: %w", err)
	}
	defer rows.Close()

	return collectPolicies(rows)
}

func collectPolicies(rows *sql.Rows) ([]*models.PolicyRecord, error) {
	var policies []*models.PolicyRecord
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy row: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (c *Client) ListMinistries() ([]models.MinistryCount, error) {
	rows, err := c.db.Query(`SELECT ministry, COUNT(*) FROM policy_cards GROUP BY ministry ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ministries: %w", err)
	}
	defer rows.Close()

	var ministries []models.MinistryCount
	for rows.Next() {
		var m models.MinistryCount
		if err := rows.Scan(&m.Name, &m.PolicyCount); err != nil {
			return nil, fmt.Errorf("failed to scan ministry row: %w", err)
		}
		ministries = append(ministries, m)
	}
	return ministries, rows.Err()
}

// PolicyStatistics aggregates counts for the stats endpoint. recentSince
// bounds the "recent" bucket.
func (c *Client) PolicyStatistics(recentSince time.Time) (*models.PolicyStats, error) {
	var stats models.PolicyStats

	err := c.db.QueryRow(`SELECT COUNT(*) FROM policy_cards`).Scan(&stats.TotalPolicies)
	if err != nil {
		return nil, fmt.Errorf("failed to count policies: %w", err)
	}

	err = c.db.QueryRow(
		`SELECT COUNT(*) FROM policy_cards WHERE publication_date >= ?`, recentSince.Unix(),
	).Scan(&stats.RecentPolicies)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent policies: %w", err)
	}

	err = c.db.QueryRow(
		`SELECT COUNT(*) FROM policy_cards WHERE missing_dates = 1 OR missing_officer_info = 1 OR missing_urls = 1`,
	).Scan(&stats.PoliciesWithGaps)
	if err != nil {
		return nil, fmt.Errorf("failed to count gap policies: %w", err)
	}

	err = c.db.QueryRow(`SELECT COUNT(DISTINCT ministry) FROM policy_cards`).Scan(&stats.MinistryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count ministries: %w", err)
	}

	if stats.TotalPolicies > 0 {
		pct := float64(stats.PoliciesWithGaps) / float64(stats.TotalPolicies) * 100
		stats.GapPercentage = math.Round(pct*100) / 100
	}

	return &stats, nil
}

func (c *Client) InsertComplaint(complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (id, url, complaint_text, is_government_url, validation_status,
			validation_reason, eligible, eligibility_score, eligibility_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(
		query,
		complaint.ID,
		complaint.URL,
		complaint.ComplaintText,
		boolToInt(complaint.IsGovernmentURL),
		complaint.ValidationStatus,
		complaint.ValidationReason,
		boolToInt(complaint.Eligible),
		complaint.EligibilityScore,
		complaint.EligibilityReason,
		complaint.CreatedAt.Unix(),
		complaint.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}

	logger.Info("Complaint recorded",
		zap.String("complaint_id", complaint.ID),
		zap.String("status", complaint.ValidationStatus),
	)
	return nil
}

func (c *Client) GetComplaint(id string) (*models.Complaint, error) {
	query := `SELECT id, url, complaint_text, is_government_url, validation_status,
		validation_reason, eligible, eligibility_score, eligibility_reason, created_at, updated_at
		FROM complaints WHERE id = ?`

	var complaint models.Complaint
	var isGov, eligible int
	var createdAt, updatedAt int64

	err := c.db.QueryRow(query, id).Scan(
		&complaint.ID,
		&complaint.URL,
		&complaint.ComplaintText,
		&isGov,
		&complaint.ValidationStatus,
		&complaint.ValidationReason,
		&eligible,
		&complaint.EligibilityScore,
		&complaint.EligibilityReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	complaint.IsGovernmentURL = isGov != 0
	complaint.Eligible = eligible != 0
	complaint.CreatedAt = time.Unix(createdAt, 0)
	complaint.UpdatedAt = time.Unix(updatedAt, 0)

	return &complaint, nil
}

func (c *Client) UpdateComplaintEligibility(complaint *models.Complaint) error {
	query := `UPDATE complaints SET validation_status = ?, validation_reason = ?,
		eligible = ?, eligibility_score = ?, eligibility_reason = ?, updated_at = ?
		WHERE id = ?`

	_, err := c.db.Exec(
		query,
		complaint.ValidationStatus,
		complaint.ValidationReason,
		boolToInt(complaint.Eligible),
		complaint.EligibilityScore,
		complaint.EligibilityReason,
		time.Now().Unix(),
		complaint.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}
	return nil
}

// UpsertRTIRequest stores the drafted application. Regenerating for the same
// complaint replaces the previous draft.
func (c *Client) UpsertRTIRequest(req *models.RTIRequest) error {
	query := `
		INSERT INTO rti_requests (id, complaint_id, rti_text, compliance_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(complaint_id) DO UPDATE SET
			rti_text = excluded.rti_text,
			compliance_score = excluded.compliance_score,
			updated_at = excluded.updated_at
	`

	_, err := c.db.Exec(
		query,
		req.ID,
		req.ComplaintID,
		req.RTIText,
		req.ComplianceScore,
		req.CreatedAt.Unix(),
		req.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store RTI request: %w", err)
	}

	logger.Info("RTI request stored",
		zap.String("complaint_id", req.ComplaintID),
		zap.Int("compliance_score", req.ComplianceScore),
	)
	return nil
}

func (c *Client) GetRTIRequest(id string) (*models.RTIRequest, error) {
	return c.getRTIRequest(`SELECT id, complaint_id, rti_text, compliance_score, created_at, updated_at
		FROM rti_requests WHERE id = ?`, id)
}

func (c *Client) GetRTIRequestByComplaint(complaintID string) (*models.RTIRequest, error) {
	return c.getRTIRequest(`SELECT id, complaint_id, rti_text, compliance_score, created_at, updated_at
		FROM rti_requests WHERE complaint_id = ?`, complaintID)
}

func (c *Client) getRTIRequest(query, arg string) (*models.RTIRequest, error) {
	var req models.RTIRequest
	var createdAt, updatedAt int64

	err := c.db.QueryRow(query, arg).Scan(
		&req.ID,
		&req.ComplaintID,
		&req.RTIText,
		&req.ComplianceScore,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get RTI request: %w", err)
	}

	req.CreatedAt = time.Unix(createdAt, 0)
	req.UpdatedAt = time.Unix(updatedAt, 0)
	return &req, nil
}

func (c *Client) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := c.db.Exec(query, user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", zap.String("user_id", user.ID))
	return nil
}

// GetUserByEmail returns (nil, nil) when no user has the email.
func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	user, err := c.getUser(`SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (c *Client) GetUser(id string) (*models.User, error) {
	return c.getUser(`SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (c *Client) getUser(query, arg string) (*models.User, error) {
	var user models.User
	var createdAt int64

	err := c.db.QueryRow(query, arg).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0)
	return &user, nil
}

func (c *Client) InsertIdea(idea *models.Idea) error {
	query := `INSERT INTO ideas (id, user_id, content, created_at) VALUES (?, ?, ?, ?)`

	_, err := c.db.Exec(query, idea.ID, idea.UserID, idea.Content, idea.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert idea: %w", err)
	}
	return nil
}

const ideaListQuery = `
	SELECT i.id, i.user_id, i.content, i.created_at, u.email, COALESCE(u.name, ''),
		COALESCE(SUM(v.value), 0) AS score,
		(SELECT COUNT(*) FROM comments c WHERE c.idea_id = i.id) AS comments_count
	FROM ideas i
	JOIN users u ON u.id = i.user_id
	LEFT JOIN votes v ON v.idea_id = i.id
	GROUP BY i.id
	ORDER BY score DESC, i.created_at DESC
`

// ListIdeas returns ideas with their vote score and comment count, highest
// score first, newest first among ties. limit <= 0 means no limit.
func (c *Client) ListIdeas(limit int) ([]*models.Idea, error) {
	query := ideaListQuery
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []*models.Idea
	for rows.Next() {
		var idea models.Idea
		var createdAt int64

		err := rows.Scan(&idea.ID, &idea.UserID, &idea.Content, &createdAt,
			&idea.AuthorEmail, &idea.AuthorName, &idea.Score, &idea.CommentsCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea row: %w", err)
		}

		idea.CreatedAt = time.Unix(createdAt, 0)
		ideas = append(ideas, &idea)
	}
	return ideas, rows.Err()
}

func (c *Client) GetIdea(id string) (*models.Idea, error) {
	query := `
		SELECT i.id, i.user_id, i.content, i.created_at, u.email, COALESCE(u.name, '')
		FROM ideas i JOIN users u ON u.id = i.user_id WHERE i.id = ?`

	var idea models.Idea
	var createdAt int64

	err := c.db.QueryRow(query, id).Scan(&idea.ID, &idea.UserID, &idea.Content, &createdAt,
		&idea.AuthorEmail, &idea.AuthorName)
	if err != nil {
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}

	idea.CreatedAt = time.Unix(createdAt, 0)
	return &idea, nil
}

// UpsertVote records or changes a user's vote on an idea. One vote per
// (user, idea); revoting replaces the value.
func (c *Client) UpsertVote(vote *models.Vote) error {
	query := `
		INSERT INTO votes (user_id, idea_id, value, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, idea_id) DO UPDATE SET value = excluded.value
	`

	_, err := c.db.Exec(query, vote.UserID, vote.IdeaID, vote.Value, vote.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

func (c *Client) IdeaScore(ideaID string) (int, error) {
	var score int
	err := c.db.QueryRow(`SELECT COALESCE(SUM(value), 0) FROM votes WHERE idea_id = ?`, ideaID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to get idea score: %w", err)
	}
	return score, nil
}

func (c *Client) InsertComment(comment *models.Comment) error {
	query := `INSERT INTO comments (id, idea_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := c.db.Exec(query, comment.ID, comment.IdeaID, comment.UserID, comment.Content, comment.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (c *Client) ListComments(ideaID string) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.idea_id, c.user_id, c.content, c.created_at, u.email, COALESCE(u.name, '')
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.idea_id = ? ORDER BY c.created_at ASC`

	rows, err := c.db.Query(query, ideaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		var createdAt int64

		err := rows.Scan(&comment.ID, &comment.IdeaID, &comment.UserID, &comment.Content,
			&createdAt, &comment.AuthorEmail, &comment.AuthorName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}

		comment.CreatedAt = time.Unix(createdAt, 0)
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
