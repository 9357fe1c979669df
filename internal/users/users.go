package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/models"
	"github.com/dengas/devtimetracker/internal/security"
)

// ErrUserNotFound is returned when a user ID resolves to nothing.
var ErrUserNotFound = errors.New("users: user not found")

// Service resolves and provisions user records from token claims.
type Service struct {
	db *gorm.DB
}

// NewService creates a user service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Ensure loads the user row matching the principal, creating it on first
// contact and refreshing stale fields on later ones. The db argument may be
// a transaction so provisioning joins the caller's unit of work.
func Ensure(db *gorm.DB, pr *security.Principal) (*models.User, error) {
	user := &models.User{}
	errFind := db.First(user, "id = ?", pr.ID).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		user = &models.User{ID: pr.ID, Email: pr.Email, Username: pr.Name}
		if user.Username == "" {
			user.Username = usernameFromEmail(pr.Email)
		}
		if errCreate := db.Create(user).Error; errCreate != nil {
			return nil, fmt.Errorf("users: create user: %w", errCreate)
		}
		return user, nil
	}
	if errFind != nil {
		return nil, fmt.Errorf("users: find user: %w", errFind)
	}
	if refreshIfNeeded(user) {
		if errSave := db.Save(user).Error; errSave != nil {
			return nil, fmt.Errorf("users: update user: %w", errSave)
		}
	}
	return user, nil
}

// refreshIfNeeded backfills fields older rows may lack and reports whether
// anything changed.
func refreshIfNeeded(u *models.User) bool {
	changed := false
	if u.Username == "" && u.Email != "" {
		u.Username = usernameFromEmail(u.Email)
		changed = u.Username != ""
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		changed = true
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now()
		changed = true
	}
	return changed
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// Ensure provisions the caller's user row outside any broader transaction.
func (s *Service) Ensure(ctx context.Context, pr *security.Principal) (*models.User, error) {
	return Ensure(s.db.WithContext(ctx), pr)
}

// GetByID fetches one user row.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	errFind := s.db.WithContext(ctx).First(user, "id = ?", id).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if errFind != nil {
		return nil, fmt.Errorf("users: find user: %w", errFind)
	}
	return user, nil
}

// Info describes the authenticated caller, including team membership.
type Info struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	IsTeamLead    bool      `json:"isTeamLead"`
	TeamIDs       []uint64  `json:"teamIds"`
	LeadingTeamID *uint64   `json:"leadingTeamId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Info provisions the caller if needed and assembles the identity payload.
func (s *Service) Info(ctx context.Context, pr *security.Principal) (*Info, error) {
	db := s.db.WithContext(ctx)
	user, err := Ensure(db, pr)
	if err != nil {
		return nil, err
	}

	var teams []models.Team
	if errTeams := db.Model(user).Association("Teams").Find(&teams); errTeams != nil {
		return nil, fmt.Errorf("users: load teams: %w", errTeams)
	}
	teamIDs := make([]uint64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	info := &Info{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		TeamIDs:   teamIDs,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	leading := &models.Team{}
	errLead := db.First(leading, "team_lead_id = ?", user.ID).Error
	if errLead == nil {
		info.IsTeamLead = true
		info.LeadingTeamID = &leading.ID
	} else if !errors.Is(errLead, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("users: find led team: %w", errLead)
	}
	return info, nil
}
