package service

import (
	"net/url"
	"strings"

	"github.com/sefazor/pixelmuse-backend/internal/models"
	"github.com/sefazor/pixelmuse-backend/pkg/qrcode"
	"github.com/sefazor/pixelmuse-backend/pkg/storage"
	"go.uber.org/zap"
)

type ProjectService struct {
	projectRepo   ProjectStore
	inputStorage  storage.BlobStorage
	outputStorage storage.BlobStorage
	logger        *zap.Logger
}

func NewProjectService(
	projectRepo ProjectStore,
	inputStorage storage.BlobStorage,
	outputStorage storage.BlobStorage,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		inputStorage:  inputStorage,
		outputStorage: outputStorage,
		logger:        logger,
	}
}

func (s *ProjectService) GetUserProjects(userID uint) ([]models.Project, error) {
	return s.projectRepo.GetByUserID(userID)
}

// DeleteProject, sahiplik kontrolünden sonra iki blob'u best-effort siler
// ve satırı kaldırır. Blob silme hataları loglanır; satır silme hatası
// kullanıcıya döner çünkü geride faturalanmış görünen bir kayıt bırakır.
func (s *ProjectService) DeleteProject(userID uint, projectID uint) error {
	project, err := s.projectRepo.GetByIDAndUserID(projectID, userID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	inputKey := project.InputKey
	if inputKey == "" {
		inputKey = blobKeyFromURL(project.InputImageURL)
	}
	outputKey := project.OutputKey
	if outputKey == "" {
		outputKey = blobKeyFromURL(project.OutputImageURL)
	}

	// Önce storage'dan sil
	if err := s.inputStorage.Delete(inputKey); err != nil {
		s.logger.Warn("failed to delete input blob",
			zap.Uint("project_id", projectID),
			zap.String("key", inputKey),
			zap.Error(err),
		)
	}
	if err := s.outputStorage.Delete(outputKey); err != nil {
		s.logger.Warn("failed to delete output blob",
			zap.Uint("project_id", projectID),
			zap.String("key", outputKey),
			zap.Error(err),
		)
	}

	return s.projectRepo.Delete(projectID, userID)
}

// GetProjectQRCode, üretilen görselin URL'ini kodlayan PNG QR döndürür.
func (s *ProjectService) GetProjectQRCode(userID uint, projectID uint, size int) ([]byte, error) {
	project, err := s.projectRepo.GetByIDAndUserID(projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	return qrcode.Encode(project.OutputImageURL, size)
}

// blobKeyFromURL, eski kayıtlar için fallback: URL'in son path segmentini
// query parametrelerinden arındırıp decode eder.
func blobKeyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		parts := strings.Split(rawURL, "/")
		return parts[len(parts)-1]
	}
	parts := strings.Split(u.Path, "/")
	return parts[len(parts)-1]
}
