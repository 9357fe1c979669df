package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dengas/devtimetracker/internal/models"
	"github.com/dengas/devtimetracker/internal/security"
	"github.com/dengas/devtimetracker/internal/users"
)

// ProjectInput is the request body for create and full update.
type ProjectInput struct {
	ProjectPath        *string            `json:"projectPath"`
	GithubBadgeVisible bool               `json:"githubBadgeVisible"`
	DailyStats         models.DailyMap    `json:"dailyStats"`
	Files              []models.FileStats `json:"files"`
}

// ProjectPatch is the request body for partial update. Nil fields keep the
// stored values; a nil file list reuses the existing file set.
type ProjectPatch struct {
	ProjectPath        *string             `json:"projectPath"`
	GithubBadgeVisible *bool               `json:"githubBadgeVisible"`
	DailyStats         models.DailyMap     `json:"dailyStats"`
	Files              *[]models.FileStats `json:"files"`
}

// DashboardStats summarizes every project visible to the caller.
type DashboardStats struct {
	TotalProjects               int64   `json:"totalProjects"`
	TotalCodingTime             int64   `json:"totalCodingTime"`
	TotalOpenTime               int64   `json:"totalOpenTime"`
	AverageCodingTimePerProject float64 `json:"averageCodingTimePerProject"`
}

// Service orchestrates the project and file lifecycle. It holds no state
// beyond the database handle; every mutating operation runs in one
// transaction.
type Service struct {
	db *gorm.DB
}

// NewService creates a lifecycle service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// canAccess applies the per-project gate. Ownerless rows predate ownership
// tracking and stay unrestricted.
func canAccess(pr *security.Principal, project *models.ProjectStats) bool {
	if project.UserID == nil {
		return true
	}
	return *project.UserID == pr.ID || pr.IsClientAdmin()
}

// Create provisions the owner, validates and persists the files, and stores
// the project with aggregated daily stats and totals.
func (s *Service) Create(ctx context.Context, pr *security.Principal, in *ProjectInput) (*models.ProjectStats, error) {
	if in.ProjectPath == nil || strings.TrimSpace(*in.ProjectPath) == "" {
		return nil, &ValidationError{Message: "Project path is required"}
	}
	for i := range in.Files {
		if errValidate := ValidateFile(&in.Files[i]); errValidate != nil {
			return nil, errValidate
		}
	}

	project := &models.ProjectStats{
		ProjectID:          uuid.NewString(),
		ProjectPath:        *in.ProjectPath,
		GithubBadgeVisible: in.GithubBadgeVisible,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, errOwner := users.Ensure(tx, pr)
		if errOwner != nil {
			return errOwner
		}
		project.UserID = &owner.ID

		files := in.Files
		for i := range files {
			files[i].ID = uuid.NewString()
			files[i].ProjectID = project.ProjectID
			recalcFileTotals(&files[i])
		}
		project.DailyStats = Aggregate(files)
		project.TotalCodingTime, project.TotalOpenTime = Totalize(project.DailyStats)

		if errCreate := tx.Create(project).Error; errCreate != nil {
			return fmt.Errorf("stats: create project: %w", errCreate)
		}
		if errFiles := insertFiles(tx, files); errFiles != nil {
			return errFiles
		}
		if errDaily := replaceProjectDaily(tx, project.ProjectID, project.DailyStats); errDaily != nil {
			return errDaily
		}
		project.Files = files
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Get fetches one project with its files after passing the gate.
func (s *Service) Get(ctx context.Context, pr *security.Principal, id string) (*models.ProjectStats, error) {
	db := s.db.WithContext(ctx)
	project, err := findProject(db, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(pr, project) {
		return nil, ErrAccessDenied
	}
	if errLoad := attach(db, project); errLoad != nil {
		return nil, errLoad
	}
	return project, nil
}

// List returns every project for admins and only the caller's own projects
// otherwise, each with files attached.
func (s *Service) List(ctx context.Context, pr *security.Principal) ([]models.ProjectStats, error) {
	db := s.db.WithContext(ctx)
	projects, err := visibleProjects(db, pr)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if errLoad := attach(db, &projects[i]); errLoad != nil {
			return nil, errLoad
		}
	}
	return projects, nil
}

// Update replaces the file set wholesale; an empty or absent list removes
// every file and zeroes the recomputed stats.
func (s *Service) Update(ctx context.Context, pr *security.Principal, id string, in *ProjectInput) (*models.ProjectStats, error) {
	var result *models.ProjectStats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, errFind := findProject(tx, id)
		if errFind != nil {
			return errFind
		}
		if !canAccess(pr, project) {
			return ErrAccessDenied
		}

		if in.ProjectPath != nil {
			project.ProjectPath = *in.ProjectPath
		}
		project.GithubBadgeVisible = in.GithubBadgeVisible

		files := in.Files
		for i := range files {
			if errValidate := ValidateFile(&files[i]); errValidate != nil {
				return errValidate
			}
		}
		if errDelete := deleteProjectFiles(tx, id); errDelete != nil {
			return errDelete
		}
		for i := range files {
			files[i].ID = uuid.NewString()
			files[i].ProjectID = id
			recalcFileTotals(&files[i])
		}
		if errFiles := insertFiles(tx, files); errFiles != nil {
			return errFiles
		}

		if errSave := saveAggregated(tx, project, files); errSave != nil {
			return errSave
		}
		result = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Patch applies a partial update. A supplied file list replaces the file set
// exactly as Update does; an absent list re-aggregates the stored files.
func (s *Service) Patch(ctx context.Context, pr *security.Principal, id string, in *ProjectPatch) (*models.ProjectStats, error) {
	var result *models.ProjectStats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, errFind := findProject(tx, id)
		if errFind != nil {
			return errFind
		}
		if !canAccess(pr, project) {
			return ErrAccessDenied
		}

		if in.ProjectPath != nil {
			project.ProjectPath = *in.ProjectPath
		}
		if in.GithubBadgeVisible != nil {
			project.GithubBadgeVisible = *in.GithubBadgeVisible
		}

		var files []models.FileStats
		if in.Files != nil {
			files = *in.Files
			for i := range files {
				if errValidate := ValidateFile(&files[i]); errValidate != nil {
					return errValidate
				}
			}
			if errDelete := deleteProjectFiles(tx, id); errDelete != nil {
				return errDelete
			}
			for i := range files {
				files[i].ID = uuid.NewString()
				files[i].ProjectID = id
				recalcFileTotals(&files[i])
			}
			if errFiles := insertFiles(tx, files); errFiles != nil {
				return errFiles
			}
		} else {
			var errLoad error
			files, errLoad = projectFiles(tx, id)
			if errLoad != nil {
				return errLoad
			}
		}

		if errSave := saveAggregated(tx, project, files); errSave != nil {
			return errSave
		}
		result = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a project with its files and daily rows.
func (s *Service) Delete(ctx context.Context, pr *security.Principal, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, errFind := findProject(tx, id)
		if errFind != nil {
			return errFind
		}
		if !canAccess(pr, project) {
			return ErrAccessDenied
		}
		if errFiles := deleteProjectFiles(tx, id); errFiles != nil {
			return errFiles
		}
		if errDaily := tx.Where("project_id = ?", id).Delete(&models.ProjectDailyStat{}).Error; errDaily != nil {
			return fmt.Errorf("stats: delete project daily stats: %w", errDaily)
		}
		if errDelete := tx.Delete(&models.ProjectStats{}, "project_id = ?", id).Error; errDelete != nil {
			return fmt.Errorf("stats: delete project: %w", errDelete)
		}
		return nil
	})
}

// ListFiles returns a project's files. Only existence is checked; this read
// is deliberately not gated.
func (s *Service) ListFiles(ctx context.Context, id string) ([]models.FileStats, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if errCount := db.Model(&models.ProjectStats{}).Where("project_id = ?", id).Count(&count).Error; errCount != nil {
		return nil, fmt.Errorf("stats: check project: %w", errCount)
	}
	if count == 0 {
		return nil, ErrProjectNotFound
	}
	return projectFiles(db, id)
}

// Dashboard summarizes the projects visible to the caller.
func (s *Service) Dashboard(ctx context.Context, pr *security.Principal) (*DashboardStats, error) {
	projects, err := visibleProjects(s.db.WithContext(ctx), pr)
	if err != nil {
		return nil, err
	}
	out := &DashboardStats{TotalProjects: int64(len(projects))}
	for _, p := range projects {
		out.TotalCodingTime += p.TotalCodingTime
		out.TotalOpenTime += p.TotalOpenTime
	}
	if out.TotalProjects > 0 {
		out.AverageCodingTimePerProject = float64(out.TotalCodingTime) / float64(out.TotalProjects)
	}
	return out, nil
}

// FindByID fetches a project with files attached, skipping the gate. Badge
// rendering decides visibility on its own.
func (s *Service) FindByID(ctx context.Context, id string) (*models.ProjectStats, error) {
	db := s.db.WithContext(ctx)
	project, err := findProject(db, id)
	if err != nil {
		return nil, err
	}
	if errLoad := attach(db, project); errLoad != nil {
		return nil, errLoad
	}
	return project, nil
}

// saveAggregated recomputes daily stats and totals from files, then persists
// the project and its day rows.
func saveAggregated(tx *gorm.DB, project *models.ProjectStats, files []models.FileStats) error {
	project.DailyStats = Aggregate(files)
	project.TotalCodingTime, project.TotalOpenTime = Totalize(project.DailyStats)
	if errSave := tx.Save(project).Error; errSave != nil {
		return fmt.Errorf("stats: save project: %w", errSave)
	}
	if errDaily := replaceProjectDaily(tx, project.ProjectID, project.DailyStats); errDaily != nil {
		return errDaily
	}
	project.Files = files
	return nil
}

func findProject(db *gorm.DB, id string) (*models.ProjectStats, error) {
	project := &models.ProjectStats{}
	errFind := db.First(project, "project_id = ?", id).Error
	if errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if errFind != nil {
		return nil, fmt.Errorf("stats: find project: %w", errFind)
	}
	return project, nil
}

func visibleProjects(db *gorm.DB, pr *security.Principal) ([]models.ProjectStats, error) {
	var projects []models.ProjectStats
	query := db
	if !pr.IsClientAdmin() {
		query = query.Where("user_id = ?", pr.ID)
	}
	if errFind := query.Find(&projects).Error; errFind != nil {
		return nil, fmt.Errorf("stats: list projects: %w", errFind)
	}
	return projects, nil
}

// attach populates the transient daily map and file list of a project.
func attach(db *gorm.DB, project *models.ProjectStats) error {
	if errDaily := loadProjectDaily(db, project); errDaily != nil {
		return errDaily
	}
	files, errFiles := projectFiles(db, project.ProjectID)
	if errFiles != nil {
		return errFiles
	}
	project.Files = files
	return nil
}

func projectFiles(db *gorm.DB, projectID string) ([]models.FileStats, error) {
	var files []models.FileStats
	if errFind := db.Where("project_id = ?", projectID).Find(&files).Error; errFind != nil {
		return nil, fmt.Errorf("stats: list files: %w", errFind)
	}
	for i := range files {
		if errDaily := loadFileDaily(db, &files[i]); errDaily != nil {
			return nil, errDaily
		}
	}
	return files, nil
}

func insertFiles(tx *gorm.DB, files []models.FileStats) error {
	for i := range files {
		if errCreate := tx.Create(&files[i]).Error; errCreate != nil {
			return fmt.Errorf("stats: create file: %w", errCreate)
		}
		if errDaily := replaceFileDaily(tx, files[i].ID, files[i].DailyStats); errDaily != nil {
			return errDaily
		}
	}
	return nil
}

// deleteProjectFiles removes a project's files together with their day rows.
func deleteProjectFiles(tx *gorm.DB, projectID string) error {
	var ids []string
	if errIDs := tx.Model(&models.FileStats{}).Where("project_id = ?", projectID).Pluck("id", &ids).Error; errIDs != nil {
		return fmt.Errorf("stats: list file ids: %w", errIDs)
	}
	if len(ids) > 0 {
		if errDaily := tx.Where("file_id IN ?", ids).Delete(&models.FileDailyStat{}).Error; errDaily != nil {
			return fmt.Errorf("stats: delete file daily stats: %w", errDaily)
		}
	}
	if errFiles := tx.Where("project_id = ?", projectID).Delete(&models.FileStats{}).Error; errFiles != nil {
		return fmt.Errorf("stats: delete files: %w", errFiles)
	}
	return nil
}
